package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"memberclub-backend/internal/domain"
	"memberclub-backend/internal/logger"
)

// SaveResult is the non-fatal outcome of writing one collection. A failed
// write is reported here and logged; it is never returned as an error.
type SaveResult struct {
	Collection Collection
	Records    int
	Err        error
}

func (r SaveResult) OK() bool { return r.Err == nil }

// Snapshot is a consistent copy of every collection.
type Snapshot struct {
	Accounts []*domain.Account
	Items    []domain.Item
	Members  []*domain.Member
	Rentals  []*domain.Rental
}

// SaveReport summarises one full save.
type SaveReport struct {
	BatchID  string
	Results  []SaveResult
	Duration time.Duration
}

func (r SaveReport) OK() bool {
	return len(r.Failed()) == 0
}

func (r SaveReport) Failed() []SaveResult {
	var failed []SaveResult
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Gateway translates domain values to records and back. Load failures
// degrade to empty results and save failures come back as SaveResult.
type Gateway struct {
	store  RecordStore
	tracer trace.Tracer
}

func NewGateway(store RecordStore) *Gateway {
	return &Gateway{
		store:  store,
		tracer: otel.Tracer("memberclub/storage"),
	}
}

func (g *Gateway) Close() error {
	return g.store.Close()
}

// SaveSnapshot writes all collections as one logical batch. A failure in
// one collection does not stop the others.
func (g *Gateway) SaveSnapshot(ctx context.Context, snap Snapshot) SaveReport {
	batchID := uuid.New().String()
	ctx, span := g.tracer.Start(ctx, "storage.save_snapshot",
		trace.WithAttributes(attribute.String("batch.id", batchID)),
	)
	defer span.End()

	started := time.Now()
	report := SaveReport{BatchID: batchID}
	report.Results = append(report.Results,
		g.SaveAccounts(ctx, snap.Accounts),
		g.SaveItems(ctx, snap.Items),
		g.SaveMembers(ctx, snap.Members),
		g.SaveRentals(ctx, snap.Rentals),
	)
	report.Duration = time.Since(started)

	for _, res := range report.Failed() {
		logger.Error("Failed to save collection", "batch_id", batchID, "collection", res.Collection, "error", res.Err)
	}
	if !report.OK() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d collections failed", len(report.Failed())))
	}
	return report
}

func (g *Gateway) SaveAccounts(ctx context.Context, accounts []*domain.Account) SaveResult {
	records, err := encodeAll(accounts, EncodeAccount)
	return g.write(ctx, CollectionAccounts, records, err)
}

func (g *Gateway) SaveItems(ctx context.Context, items []domain.Item) SaveResult {
	records, err := encodeAll(items, EncodeItem)
	return g.write(ctx, CollectionItems, records, err)
}

func (g *Gateway) SaveMembers(ctx context.Context, members []*domain.Member) SaveResult {
	records, err := encodeAll(members, EncodeMember)
	return g.write(ctx, CollectionMembers, records, err)
}

func (g *Gateway) SaveRentals(ctx context.Context, rentals []*domain.Rental) SaveResult {
	records, err := encodeAll(rentals, EncodeRental)
	return g.write(ctx, CollectionRentals, records, err)
}

func (g *Gateway) LoadAccounts(ctx context.Context) []*domain.Account {
	return decodeAll(CollectionAccounts, g.read(ctx, CollectionAccounts), DecodeAccount)
}

func (g *Gateway) LoadItems(ctx context.Context) []domain.Item {
	return decodeAll(CollectionItems, g.read(ctx, CollectionItems), DecodeItem)
}

func (g *Gateway) LoadMembers(ctx context.Context) []*domain.Member {
	return decodeAll(CollectionMembers, g.read(ctx, CollectionMembers), DecodeMember)
}

func (g *Gateway) LoadRentals(ctx context.Context) []*domain.Rental {
	return decodeAll(CollectionRentals, g.read(ctx, CollectionRentals), DecodeRental)
}

func (g *Gateway) write(ctx context.Context, collection Collection, records []json.RawMessage, encodeErr error) (res SaveResult) {
	ctx, span := g.tracer.Start(ctx, "storage.write",
		trace.WithAttributes(
			attribute.String("collection", string(collection)),
			attribute.Int("record.count", len(records)),
		),
	)
	defer span.End()

	res = SaveResult{Collection: collection, Records: len(records)}
	if encodeErr != nil {
		res.Err = fmt.Errorf("encode %s: %w", collection, encodeErr)
		span.RecordError(res.Err)
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("write %s panicked: %v", collection, r)
			span.RecordError(res.Err)
		}
	}()

	logger.StoreCall("write", string(collection), "records", len(records))
	err := g.store.Write(ctx, collection, records)
	logger.StoreResult("write", string(collection), len(records), err)
	if err != nil {
		res.Err = err
		span.RecordError(err)
	}
	return res
}

func (g *Gateway) read(ctx context.Context, collection Collection) []json.RawMessage {
	ctx, span := g.tracer.Start(ctx, "storage.read",
		trace.WithAttributes(attribute.String("collection", string(collection))),
	)
	defer span.End()

	logger.StoreCall("read", string(collection))
	records, err := g.store.Read(ctx, collection)
	logger.StoreResult("read", string(collection), len(records), err)
	if err != nil {
		logger.Warn("Treating collection as empty after read failure", "collection", collection, "error", err)
		span.RecordError(err)
		return nil
	}
	span.SetAttributes(attribute.Int("record.count", len(records)))
	return records
}

func encodeAll[T any](values []T, encode func(T) (json.RawMessage, error)) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(values))
	var errs []error
	for _, v := range values {
		raw, err := encode(v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, raw)
	}
	return records, errors.Join(errs...)
}

// decodeAll skips records that fail to decode.
func decodeAll[T any](collection Collection, records []json.RawMessage, decode func(json.RawMessage) (T, error)) []T {
	out := make([]T, 0, len(records))
	for i, raw := range records {
		v, err := decode(raw)
		if err != nil {
			logger.Warn("Skipping malformed record", "collection", collection, "position", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}
