package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	return ID(tmp), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// StringsMUS serializes ordered string sequences.
var StringsMUS = stringsMUS{}

type stringsMUS struct{}

func (s stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, str := range v {
		n += ord.String.Marshal(str, bs[n:])
	}
	return
}

func (s stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	v = make([]string, length)
	var n1 int
	for i := 0; i < length; i++ {
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s stringsMUS) Size(v []string) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, str := range v {
		size += ord.String.Size(str)
	}
	return
}

// VectorMUS serializes embedding vectors as a length prefix followed by raw float32s.
var VectorMUS = vectorMUS{}

type vectorMUS struct{}

func (s vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return
}

func (s vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	v = make([]float32, length)
	var n1 int
	for i := 0; i < length; i++ {
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s vectorMUS) Size(v []float32) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return
}

// MovieRecordMUS serializes MovieRecord values field by field in declaration order.
var MovieRecordMUS = movieRecordMUS{}

type movieRecordMUS struct{}

func (s movieRecordMUS) Marshal(v MovieRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Overview, bs[n:])
	n += StringsMUS.Marshal(v.Genres, bs[n:])
	n += StringsMUS.Marshal(v.Directors, bs[n:])
	n += StringsMUS.Marshal(v.TopCast, bs[n:])
	n += varint.Int.Marshal(int(v.Source), bs[n:])
	n += ord.String.Marshal(v.ReleaseYear, bs[n:])
	n += ord.Bool.Marshal(v.VoteAverage != nil, bs[n:])
	if v.VoteAverage != nil {
		n += raw.Float64.Marshal(*v.VoteAverage, bs[n:])
	}
	n += varint.Int.Marshal(v.VoteCount, bs[n:])
	return
}

func (s movieRecordMUS) Unmarshal(bs []byte) (v MovieRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Overview, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Genres, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Directors, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TopCast, n1, err = StringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var source int
	source, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source = Source(source)
	v.ReleaseYear, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var rated bool
	rated, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if rated {
		var rating float64
		rating, n1, err = raw.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		v.VoteAverage = &rating
	}
	v.VoteCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s movieRecordMUS) Size(v MovieRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Overview)
	size += StringsMUS.Size(v.Genres)
	size += StringsMUS.Size(v.Directors)
	size += StringsMUS.Size(v.TopCast)
	size += varint.Int.Size(int(v.Source))
	size += ord.String.Size(v.ReleaseYear)
	size += ord.Bool.Size(v.VoteAverage != nil)
	if v.VoteAverage != nil {
		size += raw.Float64.Size(*v.VoteAverage)
	}
	size += varint.Int.Size(v.VoteCount)
	return
}

// ManifestMUS serializes Manifest values.
var ManifestMUS = manifestMUS{}

type manifestMUS struct{}

func (s manifestMUS) Marshal(v Manifest, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(v.Count, bs)
	n += varint.PositiveInt.Marshal(v.VectorCount, bs[n:])
	n += varint.PositiveInt.Marshal(v.Dimensions, bs[n:])
	n += ord.String.Marshal(v.EmbeddingModel, bs[n:])
	n += varint.Int64.Marshal(v.BuiltAtMicros, bs[n:])
	return
}

func (s manifestMUS) Unmarshal(bs []byte) (v Manifest, n int, err error) {
	var n1 int
	v.Count, n, err = varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}
	v.VectorCount, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dimensions, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BuiltAtMicros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s manifestMUS) Size(v Manifest) (size int) {
	size = varint.PositiveInt.Size(v.Count)
	size += varint.PositiveInt.Size(v.VectorCount)
	size += varint.PositiveInt.Size(v.Dimensions)
	size += ord.String.Size(v.EmbeddingModel)
	size += varint.Int64.Size(v.BuiltAtMicros)
	return
}
