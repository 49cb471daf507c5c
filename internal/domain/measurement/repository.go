package measurement

import "context"

type Repository interface {
	List(ctx context.Context, userID int, kind Kind) ([]Entry, error)
	Create(ctx context.Context, e *Entry) (int, error)
	Delete(ctx context.Context, userID int, kind Kind, entryID int) error
}
