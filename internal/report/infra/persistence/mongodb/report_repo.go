package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"BaseWars/internal/report"
	"BaseWars/internal/report/app/port"
	"BaseWars/modules/kit/errx"
)

const defaultReportCollectionName = "war_reports"

type reportDoc struct {
	ID         string    `bson:"_id"`
	WarID      string    `bson:"war_id"`
	RunID      string    `bson:"run_id"`
	BaseA      string    `bson:"base_a"`
	BaseB      string    `bson:"base_b"`
	Winner     string    `bson:"winner"`
	Loser      string    `bson:"loser"`
	DeathsA    int       `bson:"deaths_a"`
	DeathsB    int       `bson:"deaths_b"`
	Survivors  int       `bson:"survivors"`
	StartedAt  time.Time `bson:"started_at"`
	FinishedAt time.Time `bson:"finished_at"`
}

type ReportRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewReportRepo(client *mongo.Client, database string) *ReportRepo {
	if client == nil {
		return &ReportRepo{}
	}
	return &ReportRepo{client: client, coll: client.Database(database).Collection(defaultReportCollectionName)}
}

func (r *ReportRepo) Save(ctx context.Context, rep *report.WarReport) error {
	if rep == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrStorage.WithCause(errors.New("mongodb report collection is nil")).WithData("op", port.OpSave)
	}
	doc := reportDoc(*rep)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errx.ErrStorage.WithCause(err).WithData("op", port.OpSave).WithData("id", rep.ID)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]report.WarReport, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrStorage.WithCause(errors.New("mongodb report collection is nil")).WithData("op", port.OpList)
	}
	opts := options.Find().SetSort(bson.D{{Key: "finished_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("op", port.OpList)
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errx.ErrStorage.WithCause(err).WithData("op", port.OpList)
	}
	out := make([]report.WarReport, 0, len(docs))
	for _, d := range docs {
		out = append(out, report.WarReport(d))
	}
	return out, nil
}

func (r *ReportRepo) Close(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
