package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"agencydash/model"
)

// NewFirestoreStore binds every collection to the given Firestore client.
func NewFirestoreStore(client *firestore.Client) *Store {
	return &Store{
		Employees:           &firestoreEmployees{FirestoreCollection: NewFirestoreCollection[model.Employee](client, CollectionEmployees)},
		Clients:             NewFirestoreCollection[model.Client](client, CollectionClients),
		StrategyHeadClients: NewFirestoreCollection[model.Client](client, CollectionStrategyHeadClients),
		StrategyClients:     NewFirestoreCollection[model.Client](client, CollectionStrategyClients),
		Tasks:               NewFirestoreCollection[model.Task](client, CollectionTasks),
		LoginGuard:          &firestoreLoginGuard{client: client},
	}
}

type FirestoreCollection[T any, P docPtr[T]] struct {
	client *firestore.Client
	name   string
}

func NewFirestoreCollection[T any, P docPtr[T]](client *firestore.Client, name string) *FirestoreCollection[T, P] {
	return &FirestoreCollection[T, P]{client: client, name: name}
}

func (c *FirestoreCollection[T, P]) List(ctx context.Context) ([]T, error) {
	return c.collect(c.client.Collection(c.name).Documents(ctx))
}

func (c *FirestoreCollection[T, P]) collect(iter *firestore.DocumentIterator) ([]T, error) {
	defer iter.Stop()

	records := []T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.name, err)
		}
		rec, err := c.decode(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (c *FirestoreCollection[T, P]) decode(doc *firestore.DocumentSnapshot) (*T, error) {
	var rec T
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, doc.Ref.ID, err)
	}
	// Older records were pushed without an id field.
	P(&rec).SetDocID(doc.Ref.ID)
	return &rec, nil
}

func (c *FirestoreCollection[T, P]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := c.client.Collection(c.name).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return c.decode(doc)
}

func (c *FirestoreCollection[T, P]) Create(ctx context.Context, rec *T) error {
	p := P(rec)
	if p.DocID() == "" {
		p.SetDocID(uuid.New().String())
	}
	if _, err := c.client.Collection(c.name).Doc(p.DocID()).Set(ctx, rec); err != nil {
		return fmt.Errorf("create %s/%s: %w", c.name, p.DocID(), err)
	}
	return nil
}

func (c *FirestoreCollection[T, P]) Update(ctx context.Context, id string, mutate func(*T) error) (*T, error) {
	ref := c.client.Collection(c.name).Doc(id)

	var updated *T
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		rec, err := c.decode(doc)
		if err != nil {
			return err
		}
		if err := mutate(rec); err != nil {
			return err
		}
		P(rec).SetDocID(id)
		updated = rec
		return tx.Set(ref, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	return updated, nil
}

type firestoreEmployees struct {
	*FirestoreCollection[model.Employee, *model.Employee]
}

func (e *firestoreEmployees) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	query := e.client.Collection(e.name).Where("email", "==", strings.ToLower(strings.TrimSpace(email))).Limit(1)
	employees, err := e.collect(query.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ErrNotFound
	}
	return &employees[0], nil
}

type firestoreLoginGuard struct {
	client *firestore.Client
}

func (g *firestoreLoginGuard) failures(email string) *firestore.CollectionRef {
	return g.client.Collection(CollectionLoginFailures).Doc(email).Collection("attempts")
}

func (g *firestoreLoginGuard) RecordFailure(ctx context.Context, failure model.LoginFailure) error {
	if _, err := g.failures(failure.Email).Doc(uuid.New().String()).Set(ctx, failure); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

func (g *firestoreLoginGuard) CountFailures(ctx context.Context, email string, now time.Time) (int, error) {
	iter := g.failures(email).Where("expiresAt", ">", now).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count login failures: %w", err)
		}
		count++
	}
	return count, nil
}

func (g *firestoreLoginGuard) Block(ctx context.Context, block model.LoginBlock) error {
	if _, err := g.client.Collection(CollectionLoginBlocks).Doc(block.Email).Set(ctx, block); err != nil {
		return fmt.Errorf("block email: %w", err)
	}
	return nil
}

func (g *firestoreLoginGuard) ActiveBlock(ctx context.Context, email string, now time.Time) (*model.LoginBlock, error) {
	ref := g.client.Collection(CollectionLoginBlocks).Doc(email)
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("read login block: %w", err)
	}

	var block model.LoginBlock
	if err := doc.DataTo(&block); err != nil {
		return nil, fmt.Errorf("decode login block: %w", err)
	}
	if now.Before(block.ExpiresAt) {
		return &block, nil
	}

	if _, err := ref.Delete(ctx); err != nil {
		return nil, fmt.Errorf("delete expired login block: %w", err)
	}
	return nil, nil
}

func (g *firestoreLoginGuard) Clear(ctx context.Context, email string) error {
	iter := g.failures(email).Documents(ctx)
	defer iter.Stop()

	bw := g.client.BulkWriter(ctx)
	var jobs []writeJob
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return fmt.Errorf("list login failures: %w", err)
		}
		job, err := bw.Delete(doc.Ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("delete login failure: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	return waitWrites(jobs)
}

// writeJob is the part of *firestore.BulkWriterJob that reports the outcome.
type writeJob interface {
	Results() (*firestore.WriteResult, error)
}

// waitWrites collects the outcome of queued bulk writes.
func waitWrites(jobs []writeJob) error {
	var errs []error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d bulk writes failed: %w", len(errs), len(jobs), errors.Join(errs...))
	}
	return nil
}
