// Package memory holds the process-resident song registry and video ledger.
// Neither type is safe for concurrent use; callers serialize access.
package memory

import (
	"slices"

	"ugc_tracker/internal/domain"
)

type SongRegistry struct {
	songs []domain.Song
}

// NewSongRegistry returns a registry seeded with songs. Seeds with a
// duplicate id are skipped.
func NewSongRegistry(seed ...domain.Song) *SongRegistry {
	r := &SongRegistry{}
	for _, s := range seed {
		_ = r.Add(s)
	}
	return r
}

func (r *SongRegistry) Add(song domain.Song) error {
	if r.indexOf(song.ID) >= 0 {
		return domain.ErrSongExists
	}
	r.songs = append(r.songs, song)
	return nil
}

// Remove deletes the song with id and reports whether it was present.
// Videos already matched to it keep their dangling reference.
func (r *SongRegistry) Remove(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.songs = slices.Delete(r.songs, i, i+1)
	return true
}

func (r *SongRegistry) Get(id string) (domain.Song, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return domain.Song{}, false
	}
	return r.songs[i], true
}

// List returns a copy of the registry in insertion order.
func (r *SongRegistry) List() []domain.Song {
	return slices.Clone(r.songs)
}

func (r *SongRegistry) indexOf(id string) int {
	return slices.IndexFunc(r.songs, func(s domain.Song) bool { return s.ID == id })
}
