package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"studhub/internal/model"
)

type WriteOptions struct {
	Overwrite bool
	// CategoryOrder sorts the index sections; unknown categories go last.
	CategoryOrder []string
}

type WriteResult struct {
	Written []string `json:"written"`
}

func cleanDir(toDir string) (string, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return "", errors.New("missing --to")
	}
	return filepath.Clean(toDir), nil
}

// WriteListing writes <toDir>/listings/<id>.md.
func WriteListing(l model.Listing, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir, err := cleanDir(toDir)
	if err != nil {
		return WriteResult{}, err
	}
	outDir := filepath.Join(toDir, "listings")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	p := filepath.Join(outDir, l.ID+".md")
	if err := writeFile(p, []byte(RenderListingMarkdown(l)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{p}}, nil
}

// WriteCatalog writes index.md plus one page per listing. It stops at the
// first file that cannot be written.
func WriteCatalog(ls []model.Listing, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir, err := cleanDir(toDir)
	if err != nil {
		return WriteResult{}, err
	}
	if err := os.MkdirAll(filepath.Join(toDir, "listings"), 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	index := RenderCatalogIndexMarkdown("Каталог StudHub", ls, opt.CategoryOrder)
	if err := writeFile(indexPath, []byte(index), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, l := range ls {
		res, err := WriteListing(l, toDir, opt)
		if err != nil {
			return WriteResult{}, err
		}
		written = append(written, res.Written...)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
