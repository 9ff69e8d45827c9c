package usecase_test

import (
	"context"
	"testing"

	"codelearn-backend/internal/domain"
	"codelearn-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmitChallenge(t *testing.T) {
	challenge := &domain.Challenge{
		ID:          primitive.NewObjectID(),
		Title:       "FizzBuzz",
		Description: "Print fizzbuzz",
		TestCases:   []domain.TestCase{{Input: "3", ExpectedOutput: "Fizz"}},
	}
	userID := primitive.NewObjectID()

	t.Run("verdict starting with correct passes", func(t *testing.T) {
		repo := new(MockChallengeRepo)
		judge := new(MockJudge)
		uc := usecase.NewChallengeUsecase(repo, judge)

		repo.On("GetByID", mock.Anything, challenge.ID).Return(challenge, nil)
		judge.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("Correct\nThe code handles all cases.", nil)

		verdict, err := uc.SubmitChallenge(context.Background(), userID, challenge.ID, "print('fizz')", "python")

		assert.NoError(t, err)
		assert.True(t, verdict.Passed)
	})

	t.Run("any other verdict fails", func(t *testing.T) {
		repo := new(MockChallengeRepo)
		judge := new(MockJudge)
		uc := usecase.NewChallengeUsecase(repo, judge)

		repo.On("GetByID", mock.Anything, challenge.ID).Return(challenge, nil)
		judge.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("incorrect\nMisses the edge case.", nil)

		verdict, err := uc.SubmitChallenge(context.Background(), userID, challenge.ID, "print(1)", "python")

		assert.NoError(t, err)
		assert.False(t, verdict.Passed)
	})

	t.Run("empty code is rejected before calling the judge", func(t *testing.T) {
		repo := new(MockChallengeRepo)
		judge := new(MockJudge)
		uc := usecase.NewChallengeUsecase(repo, judge)

		_, err := uc.SubmitChallenge(context.Background(), userID, challenge.ID, "   ", "python")

		assert.ErrorIs(t, err, domain.ErrValidation)
		judge.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestAssist(t *testing.T) {
	t.Run("strips the code fence from the reply", func(t *testing.T) {
		repo := new(MockChallengeRepo)
		judge := new(MockJudge)
		uc := usecase.NewChallengeUsecase(repo, judge)

		judge.On("Generate", mock.Anything, "how do I loop").
			Return("Here you go:\n```go\nfor i := 0; i < 10; i++ {}\n```\nHope that helps.", nil)

		answer, err := uc.Assist(context.Background(), "how do I loop")

		assert.NoError(t, err)
		assert.Equal(t, "for i := 0; i < 10; i++ {}", answer)
	})

	t.Run("returns plain replies untouched", func(t *testing.T) {
		repo := new(MockChallengeRepo)
		judge := new(MockJudge)
		uc := usecase.NewChallengeUsecase(repo, judge)

		judge.On("Generate", mock.Anything, "what is a slice").
			Return("A slice is a view over an array.", nil)

		answer, err := uc.Assist(context.Background(), "what is a slice")

		assert.NoError(t, err)
		assert.Equal(t, "A slice is a view over an array.", answer)
	})
}
