package track

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoadDir parses and enriches every .gpx file in dir. Files are
// processed concurrently; the result is sorted by slug so assembly is
// deterministic regardless of completion order.
func LoadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		files []File
	)
	g := new(errgroup.Group)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".gpx") {
			continue
		}
		name := e.Name()
		g.Go(func() error {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			t, err := Parse(data, name)
			if err != nil {
				return err
			}
			f := File{
				Slug:     t.Slug,
				Name:     name,
				Raw:      data,
				Track:    t,
				Geometry: Enrich(t),
			}
			mu.Lock()
			files = append(files, f)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Slug < files[j].Slug })
	return files, nil
}
