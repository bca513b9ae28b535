// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/poiesic/moviesearch/core"
)

// MarshalMovieRecord serializes a MovieRecord to bytes.
func MarshalMovieRecord(record *core.MovieRecord) []byte {
	buf := make([]byte, core.MovieRecordMUS.Size(*record))
	core.MovieRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalMovieRecord deserializes a MovieRecord from bytes.
func UnmarshalMovieRecord(data []byte) (*core.MovieRecord, error) {
	record, _, err := core.MovieRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: movie record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, core.VectorMUS.Size(vector))
	core.VectorMUS.Marshal(vector, buf)
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	vector, _, err := core.VectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	return vector, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *core.Manifest) []byte {
	buf := make([]byte, core.ManifestMUS.Size(*manifest))
	core.ManifestMUS.Marshal(*manifest, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*core.Manifest, error) {
	manifest, _, err := core.ManifestMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", ErrSerializationFailed, err)
	}
	return &manifest, nil
}
