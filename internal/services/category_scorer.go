package services

import (
	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

type CategoryScorerInterface interface {
	Score(answers []trip_models.Answer) (trip_models.CategoryScore, error)
}

type CategoryScorer struct {
	logger *zap.Logger
}

func NewCategoryScorer(logger *zap.Logger) CategoryScorerInterface {
	return &CategoryScorer{logger: logger}
}

// Score turns questionnaire answers into category weights. A category touched
// by several answers keeps its highest score.
func (s *CategoryScorer) Score(answers []trip_models.Answer) (trip_models.CategoryScore, error) {
	scores := make(trip_models.CategoryScore)
	keepMax := func(c trip_models.Category, v float64) {
		if v <= 0 {
			return
		}
		if v > scores[c] {
			scores[c] = v
		}
	}

	for _, ans := range answers {
		q, ok := catalog.LookupQuestion(ans.QuestionID)
		if !ok {
			s.logger.Debug("skipping unknown question", zap.Int("question_id", ans.QuestionID))
			continue
		}
		if q.Type != ans.Type {
			s.logger.Debug("skipping answer with mismatched type",
				zap.Int("question_id", ans.QuestionID), zap.String("type", string(ans.Type)))
			continue
		}

		switch ans.Type {
		case trip_models.QuestionScale:
			if ans.Scale >= q.Rule.Threshold {
				keepMax(q.Rule.High, ans.Scale)
			} else {
				keepMax(q.Rule.Low, ans.Scale)
			}
		case trip_models.QuestionSelect:
			for _, idx := range ans.Selected {
				if idx < 0 || idx >= len(q.Options) {
					continue
				}
				keepMax(q.Options[idx], 1.0)
			}
		}
	}

	if !scores.HasSignal() {
		return nil, utils.ErrEmptyCategoryScores
	}
	return scores, nil
}
