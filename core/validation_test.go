package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateMovieRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *MovieRecord
		wantErr error
	}{
		{
			name:    "valid record",
			record:  &MovieRecord{Title: "Inception", Source: SourceHollywood, VoteAverage: RatingOf(8.8)},
			wantErr: nil,
		},
		{
			name:    "valid record without rating",
			record:  &MovieRecord{Title: "Dangal", Source: SourceBollywood},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidMovieRecord,
		},
		{
			name:    "empty title",
			record:  &MovieRecord{Title: "  ", Source: SourceHollywood},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "invalid source",
			record:  &MovieRecord{Title: "Baahubali", Source: Source(7)},
			wantErr: ErrInvalidSource,
		},
		{
			name: "too many directors",
			record: &MovieRecord{
				Title:     "Anthology",
				Source:    SourceHollywood,
				Directors: []string{"a", "b", "c", "d"},
			},
			wantErr: ErrTooManyDirectors,
		},
		{
			name: "too many cast",
			record: &MovieRecord{
				Title:   "Ensemble",
				Source:  SourceHollywood,
				TopCast: []string{"a", "b", "c", "d", "e", "f"},
			},
			wantErr: ErrTooManyCast,
		},
		{
			name:    "negative rating",
			record:  &MovieRecord{Title: "Flop", Source: SourceHollywood, VoteAverage: RatingOf(-1)},
			wantErr: ErrInvalidRating,
		},
		{
			name:    "NaN rating",
			record:  &MovieRecord{Title: "Flop", Source: SourceHollywood, VoteAverage: RatingOf(math.NaN())},
			wantErr: ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMovieRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMovieRecord() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateMovieRecord() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMovieRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeMovieRecord(t *testing.T) {
	record := &MovieRecord{
		Title:     "  Sultan ",
		Source:    SourceBollywood,
		Genres:    []string{"Sports", " ", "Drama"},
		Directors: []string{"Ali Abbas Zafar", "", "b", "c", "d"},
		TopCast:   nil,
	}

	NormalizeMovieRecord(record)

	if record.Title != "Sultan" {
		t.Errorf("Title = %q, want %q", record.Title, "Sultan")
	}
	if len(record.Genres) != 2 {
		t.Errorf("Genres = %v, want 2 entries", record.Genres)
	}
	if len(record.Directors) != MaxDirectors {
		t.Errorf("Directors = %v, want %d entries", record.Directors, MaxDirectors)
	}
	if record.TopCast == nil || len(record.TopCast) != 0 {
		t.Errorf("TopCast = %#v, want empty non-nil slice", record.TopCast)
	}
	if record.Id != MovieID(SourceBollywood, "Sultan", "") {
		t.Errorf("Id = %d, want content-derived ID", record.Id)
	}
	if err := ValidateMovieRecord(record); err != nil {
		t.Errorf("normalized record failed validation: %v", err)
	}
}

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr bool
	}{
		{"hollywood", SourceHollywood, false},
		{"bollywood", SourceBollywood, false},
		{"zero", Source(0), true},
		{"out of range", Source(999), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.source)
			if tt.wantErr && err == nil {
				t.Error("ValidateSource() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateSource() error = %v, want nil", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidSource) {
				t.Errorf("ValidateSource() error = %v, want %v", err, ErrInvalidSource)
			}
		})
	}
}
