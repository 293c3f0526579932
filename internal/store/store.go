package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/shelf/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketBooks = []byte("books")
)

// BookStore implements domain.BookCatalog using BoltDB.
type BookStore struct {
	db *bolt.DB
	mu sync.Mutex // Serializes read-modify-write sequences

	// Memory-only mode (no persistence)
	mem map[int][]byte
	seq int
}

// Open opens (or creates) the book database at path.
// An empty path returns a memory-only store.
func Open(path string) (*BookStore, error) {
	if path == "" {
		return &BookStore{mem: make(map[int][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBooks)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BookStore{db: db}, nil
}

// Close closes the underlying database. It is a no-op in memory mode.
func (s *BookStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// itob encodes an id as a big-endian key so cursor order matches id order
func itob(id int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// === Generic helpers ===

// get returns the raw record for id. A missing record is domain.ErrBookNotFound.
func (s *BookStore) get(id int) ([]byte, error) {
	if s.db == nil {
		if data, ok := s.mem[id]; ok {
			return data, nil
		}
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketBooks).Get(itob(id)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read book %d: %w", id, err)
	}
	if data == nil {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}
	return data, nil
}

func (s *BookStore) put(book domain.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}

	if s.db == nil {
		s.mem[book.ID] = data
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBooks).Put(itob(book.ID), data)
	})
}

func (s *BookStore) all() ([]domain.Book, error) {
	var books []domain.Book
	decode := func(v []byte) error {
		var b domain.Book
		if err := json.Unmarshal(v, &b); err != nil {
			return err
		}
		books = append(books, b)
		return nil
	}

	if s.db == nil {
		for _, v := range s.mem {
			if err := decode(v); err != nil {
				return nil, err
			}
		}
		sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
		return books, nil
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBooks).ForEach(func(_, v []byte) error {
			return decode(v)
		})
	})
	return books, err
}

func (s *BookStore) nextID() (int, error) {
	if s.db == nil {
		s.seq++
		return s.seq, nil
	}

	var id uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		id, err = tx.Bucket(bucketBooks).NextSequence()
		return err
	})
	return int(id), err
}

// === Books ===

// CreateBook validates and stores a new book, assigning its id.
func (s *BookStore) CreateBook(ctx context.Context, book domain.Book) (domain.Book, error) {
	if err := book.Validate(); err != nil {
		return domain.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.all()
	if err != nil {
		return domain.Book{}, err
	}
	for _, b := range existing {
		if b.SameEdition(book) {
			return domain.Book{}, fmt.Errorf("%w: %s", domain.ErrDuplicateBook, book)
		}
	}

	id, err := s.nextID()
	if err != nil {
		return domain.Book{}, fmt.Errorf("failed to allocate book id: %w", err)
	}
	book.ID = id
	book.ReadCount = 0

	if err := s.put(book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// GetBook returns the stored book or domain.ErrBookNotFound.
func (s *BookStore) GetBook(ctx context.Context, id int) (domain.Book, error) {
	s.mu.Lock()
	data, err := s.get(id)
	s.mu.Unlock()

	if err != nil {
		return domain.Book{}, err
	}

	var book domain.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return domain.Book{}, fmt.Errorf("failed to decode book %d: %w", id, err)
	}
	return book, nil
}

// ListBooks returns every book ordered by id.
func (s *BookStore) ListBooks(ctx context.Context) ([]domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all()
}

// DeleteBook removes a book. Deleting an unknown id returns domain.ErrBookNotFound.
func (s *BookStore) DeleteBook(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(id); err != nil {
		return err
	}

	if s.db == nil {
		delete(s.mem, id)
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBooks).Delete(itob(id))
	})
}

// IncrementReadCount bumps the persisted read count of a book.
func (s *BookStore) IncrementReadCount(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.get(id)
	if err != nil {
		return err
	}

	var book domain.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return fmt.Errorf("failed to decode book %d: %w", id, err)
	}
	book.ReadCount++

	return s.put(book)
}
