package usecase

import (
	"context"
	"fmt"
	"strings"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type challengeUsecase struct {
	challengeRepo domain.ChallengeRepository
	judge         domain.CodeJudge
}

func NewChallengeUsecase(cr domain.ChallengeRepository, judge domain.CodeJudge) domain.ChallengeUsecase {
	return &challengeUsecase{challengeRepo: cr, judge: judge}
}

func (uc *challengeUsecase) AddChallenge(ctx context.Context, challenge *domain.Challenge) error {
	if challenge.Title == "" || challenge.Description == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	return uc.challengeRepo.Create(ctx, challenge)
}

func (uc *challengeUsecase) GetChallenges(ctx context.Context, courseID primitive.ObjectID) ([]domain.Challenge, error) {
	return uc.challengeRepo.GetByCourseID(ctx, courseID)
}

func (uc *challengeUsecase) UpdateChallenge(ctx context.Context, challenge *domain.Challenge) error {
	return uc.challengeRepo.Update(ctx, challenge)
}

func (uc *challengeUsecase) DeleteChallenge(ctx context.Context, id primitive.ObjectID) error {
	return uc.challengeRepo.Delete(ctx, id)
}

// SubmitChallenge asks the judge whether the submitted code solves the
// challenge against its test cases. The verdict passes only when the reply
// starts with the word "correct".
func (uc *challengeUsecase) SubmitChallenge(ctx context.Context, userID, challengeID primitive.ObjectID, code, language string) (*domain.ChallengeVerdict, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrValidation)
	}

	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a strict code judge. Evaluate whether the following %s code solves the problem.\n\n", language)
	fmt.Fprintf(&sb, "Problem: %s\n%s\n\n", challenge.Title, challenge.Description)
	if len(challenge.TestCases) > 0 {
		sb.WriteString("Test cases:\n")
		for _, tc := range challenge.TestCases {
			fmt.Fprintf(&sb, "- input: %s, expected output: %s\n", tc.Input, tc.ExpectedOutput)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Code:\n%s\n\n", code)
	sb.WriteString("Reply with exactly one word on the first line: \"correct\" if the code solves the problem for all test cases, otherwise \"incorrect\". Then explain briefly.")

	reply, err := uc.judge.Generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	verdict := strings.ToLower(strings.TrimSpace(reply))
	passed := strings.HasPrefix(verdict, "correct")

	message := "Your solution did not pass. Review the test cases and try again."
	if passed {
		message = "Your solution passed all test cases."
	}
	return &domain.ChallengeVerdict{Passed: passed, Message: message}, nil
}

// Assist forwards a student's question to the assistant and strips markdown
// code fences from the reply so the client gets plain code.
func (uc *challengeUsecase) Assist(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	reply, err := uc.judge.Generate(ctx, query)
	if err != nil {
		return "", err
	}
	return extractCodeBlock(reply), nil
}

// extractCodeBlock returns the contents of the first fenced code block, or
// the whole reply when there is none.
func extractCodeBlock(reply string) string {
	start := strings.Index(reply, "```")
	if start == -1 {
		return strings.TrimSpace(reply)
	}
	rest := reply[start+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// Skip the language tag on the fence line.
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
