package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

const defaultProjectsCollection = "projects"

// FirestoreGateway stores projects as Firestore documents and streams native query snapshots.
type FirestoreGateway struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreGateway(client *firestore.Client, collection string) *FirestoreGateway {
	if collection == "" {
		collection = defaultProjectsCollection
	}
	return &FirestoreGateway{client: client, collection: collection}
}

func (g *FirestoreGateway) col() *firestore.CollectionRef {
	return g.client.Collection(g.collection)
}

func (g *FirestoreGateway) byStatus(status domain.Status) firestore.Query {
	return g.col().Where("status", "==", string(status)).OrderBy("dateCreated", firestore.Desc)
}

func (g *FirestoreGateway) Create(ctx context.Context, p domain.Project) (string, error) {
	ref, _, err := g.col().Add(ctx, p.Normalize())
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (g *FirestoreGateway) Update(ctx context.Context, id string, p domain.Project) error {
	p = p.Normalize()
	_, err := g.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "clientName", Value: p.ClientName},
		{Path: "clientEmail", Value: p.ClientEmail},
		{Path: "clientPhone", Value: p.ClientPhone},
		{Path: "projectAddress", Value: p.ProjectAddress},
		{Path: "clientNotes", Value: p.ClientNotes},
		{Path: "zones", Value: p.Zones},
		{Path: "plants", Value: p.Plants},
		{Path: "status", Value: string(p.Status)},
		{Path: "dateCreated", Value: p.DateCreated},
		{Path: "dateCompleted", Value: p.DateCompleted},
	})
	if grpcstatus.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return err
}

func (g *FirestoreGateway) Get(ctx context.Context, id string) (domain.Project, error) {
	snap, err := g.col().Doc(id).Get(ctx)
	if err != nil {
		if grpcstatus.Code(err) == codes.NotFound {
			return domain.Project{}, domain.ErrNotFound
		}
		return domain.Project{}, err
	}
	return decodeDocument(snap)
}

func (g *FirestoreGateway) List(ctx context.Context, status domain.Status) ([]domain.Project, error) {
	docs, err := g.byStatus(status).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeDocuments(docs)
}

func (g *FirestoreGateway) Subscribe(ctx context.Context, status domain.Status) (<-chan []domain.Project, error) {
	it := g.byStatus(status).Snapshots(ctx)
	out := make(chan []domain.Project, 1)

	go func() {
		defer close(out)
		defer it.Stop()
		logger := logging.New(ctx)

		for {
			snap, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && grpcstatus.Code(err) != codes.Canceled {
					logger.LogErrorf("watch_projects", "status=%q error=%v", status, err)
				}
				return
			}
			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.LogErrorf("watch_projects", "status=%q read snapshot error=%v", status, err)
				continue
			}
			items, err := decodeDocuments(docs)
			if err != nil {
				logger.LogErrorf("watch_projects", "status=%q decode error=%v", status, err)
				continue
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Ping reads at most one document to confirm the backend is reachable.
func (g *FirestoreGateway) Ping(ctx context.Context) error {
	_, err := g.col().Limit(1).Documents(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (g *FirestoreGateway) Close() error {
	return g.client.Close()
}

func decodeDocuments(docs []*firestore.DocumentSnapshot) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		p, err := decodeDocument(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeDocument(snap *firestore.DocumentSnapshot) (domain.Project, error) {
	var p domain.Project
	if err := snap.DataTo(&p); err != nil {
		return domain.Project{}, fmt.Errorf("decode project %s: %w", snap.Ref.ID, err)
	}
	p.ID = snap.Ref.ID
	return p.Normalize(), nil
}
