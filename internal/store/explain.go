package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"books-explorer/internal/models"
	"books-explorer/internal/queries"
)

// planStage is one node of a winning plan. Servers running the slot based
// engine nest the classic plan under queryPlan.
type planStage struct {
	Stage      string     `bson:"stage"`
	IndexName  string     `bson:"indexName"`
	InputStage *planStage `bson:"inputStage"`
	QueryPlan  *planStage `bson:"queryPlan"`
}

type explainReply struct {
	QueryPlanner struct {
		WinningPlan planStage `bson:"winningPlan"`
	} `bson:"queryPlanner"`
	ExecutionStats struct {
		NReturned           int64 `bson:"nReturned"`
		ExecutionTimeMillis int64 `bson:"executionTimeMillis"`
		TotalKeysExamined   int64 `bson:"totalKeysExamined"`
		TotalDocsExamined   int64 `bson:"totalDocsExamined"`
	} `bson:"executionStats"`
}

// ExplainFind runs explain with executionStats verbosity for a find on the
// books collection.
func (s *BookStore) ExplainFind(ctx context.Context, filter bson.D) (stats models.ExplainStats, err error) {
	defer s.observe("explain", time.Now(), &err)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: s.coll.Name()},
			{Key: "filter", Value: filter},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	var reply explainReply
	if err := s.coll.Database().RunCommand(ctx, cmd).Decode(&reply); err != nil {
		return stats, fmt.Errorf("explain: %w", err)
	}

	plan := &reply.QueryPlanner.WinningPlan
	if plan.QueryPlan != nil {
		plan = plan.QueryPlan
	}
	stats = models.ExplainStats{
		Stage:               plan.Stage,
		IndexName:           plan.indexName(),
		NReturned:           reply.ExecutionStats.NReturned,
		ExecutionTimeMillis: reply.ExecutionStats.ExecutionTimeMillis,
		TotalKeysExamined:   reply.ExecutionStats.TotalKeysExamined,
		TotalDocsExamined:   reply.ExecutionStats.TotalDocsExamined,
	}
	return stats, nil
}

func (s *BookStore) ExplainByTitle(ctx context.Context, title string) (models.ExplainStats, error) {
	return s.ExplainFind(ctx, queries.ByTitle(title))
}

func (s *BookStore) ExplainByAuthorYear(ctx context.Context, author string, year int) (models.ExplainStats, error) {
	return s.ExplainFind(ctx, queries.ByAuthorAndYear(author, year))
}

func (p *planStage) indexName() string {
	for st := p; st != nil; st = st.InputStage {
		if st.IndexName != "" {
			return st.IndexName
		}
	}
	return ""
}
