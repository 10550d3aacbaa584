package inmemdb

import (
	"sync"

	"github.com/trezcool/trackademics/core/task"
)

type (
	// DB holds the ordered record tables. Data lives in process memory only.
	DB struct {
		exam       *examTable
		submission *submissionTable
	}

	examTable struct {
		sync.RWMutex
		rows []task.Exam
	}

	submissionTable struct {
		sync.RWMutex
		rows []task.Submission
	}
)

func Open() (*DB, error) {
	db := &DB{
		exam:       &examTable{rows: make([]task.Exam, 0)},
		submission: &submissionTable{rows: make([]task.Submission, 0)},
	}
	return db, nil
}

// Close drops every record.
func (db *DB) Close() error {
	db.exam.Lock()
	db.exam.rows = nil
	db.exam.Unlock()

	db.submission.Lock()
	db.submission.rows = nil
	db.submission.Unlock()
	return nil
}

func contains(ids []string, id string) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
