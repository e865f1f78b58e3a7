package crossref

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

// Orphans walks the directories under root independently of the manifest and
// warns about every folder that holds content but whose content path is not
// registered. A missing root yields no findings.
func Orphans(root string, registered sets.Set[string], opts content.Options) (report.Findings, error) {
	var f report.Findings
	if !content.RootExists(root) {
		return f, nil
	}

	label := opts.Label
	if label == "" {
		label = filepath.Base(filepath.Clean(root))
	}

	err := content.Walk(root, opts, func(rel string, entries []fs.DirEntry) error {
		if registered.Has(rel) || !hasContent(rel, entries, opts) {
			return nil
		}
		f.Warn(path.Join(label, rel), report.RuleOrphanContent,
			fmt.Sprintf("Content folder %q is not referenced by the manifest", displayPath(rel)), 0)
		return nil
	})
	if err != nil {
		return f, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan content folders").
			WithPath(root).
			Build()
	}
	return f, nil
}

func hasContent(rel string, entries []fs.DirEntry, opts content.Options) bool {
	for _, e := range entries {
		if e.IsDir() || content.IsPrivate(e.Name()) || !opts.IsContentFile(e.Name()) {
			continue
		}
		if opts.Excluded(path.Join(rel, e.Name())) {
			continue
		}
		return true
	}
	return false
}
