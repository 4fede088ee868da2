package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

func TestCategoryScorer(t *testing.T) {
	scorer := NewCategoryScorer(zap.NewNop())

	tests := []struct {
		name    string
		answers []trip_models.Answer
		want    trip_models.CategoryScore
		wantErr error
	}{
		{
			name:    "scale above threshold scores the high side",
			answers: []trip_models.Answer{{QuestionID: 1, Type: trip_models.QuestionScale, Scale: 0.8}},
			want:    trip_models.CategoryScore{trip_models.CategoryCultural: 0.8},
		},
		{
			name:    "scale below threshold scores the low side",
			answers: []trip_models.Answer{{QuestionID: 1, Type: trip_models.QuestionScale, Scale: 0.3}},
			want:    trip_models.CategoryScore{trip_models.CategoryOutdoor: 0.3},
		},
		{
			name: "select answers score one and the maximum wins",
			answers: []trip_models.Answer{
				{QuestionID: 1, Type: trip_models.QuestionScale, Scale: 0.6},
				{QuestionID: 4, Type: trip_models.QuestionSelect, Selected: []int{0, 1}},
				{QuestionID: 5, Type: trip_models.QuestionSelect, Selected: []int{0, 9}},
			},
			want: trip_models.CategoryScore{
				trip_models.CategoryLandmarks: 1,
				trip_models.CategoryCultural:  1,
				trip_models.CategoryFood:      1,
			},
		},
		{
			name: "unknown and mismatched answers are ignored",
			answers: []trip_models.Answer{
				{QuestionID: 99, Type: trip_models.QuestionScale, Scale: 1},
				{QuestionID: 4, Type: trip_models.QuestionScale, Scale: 1},
				{QuestionID: 2, Type: trip_models.QuestionScale, Scale: 0.9},
			},
			want: trip_models.CategoryScore{trip_models.CategoryHistoric: 0.9},
		},
		{
			name:    "no answers",
			wantErr: utils.ErrEmptyCategoryScores,
		},
		{
			name:    "zero scale gives no signal",
			answers: []trip_models.Answer{{QuestionID: 3, Type: trip_models.QuestionScale, Scale: 0}},
			wantErr: utils.ErrEmptyCategoryScores,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(tt.answers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
