package file

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
	"github.com/spf13/afero"
)

// Conf configures a file DataSource
type Conf struct {
	Pattern    string   // A glob pattern matched against the base name of each file. Defaults to *.
	Recursive  bool     // If true, files in subdirectories are also considered
	Extensions []string // If non-empty, only files with one of these extensions (optionally followed by .lz4) are considered
}

// DataSource is a directory of files containing data which will be read into a Table
type DataSource struct {
	fs   afero.Fs
	dir  string
	conf *Conf
}

// CreateDataSource is a factory for DataSources. If fs is nil, the OS filesystem is used.
func CreateDataSource(fs afero.Fs, dir string, conf *Conf) *DataSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if conf == nil {
		conf = &Conf{}
	}
	if len(conf.Pattern) == 0 {
		conf.Pattern = "*"
	}
	return &DataSource{fs: fs, dir: dir, conf: conf}
}

// Analyze returns a PartitionMap, describing which files will be read, in order
func (fs *DataSource) Analyze() (scify.PartitionMap, error) {
	pm, err := fs.AnalyzeFiles()
	if err != nil {
		return nil, err
	}
	return pm, nil
}

// AnalyzeFiles is Analyze, returning a PartitionMap which produces file PartitionLoaders
func (fs *DataSource) AnalyzeFiles() (*PartitionMap, error) {
	matches, err := fs.List()
	if err != nil {
		return nil, err
	}
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}

// List returns the paths of the files in this DataSource, sorted lexicographically
func (fs *DataSource) List() ([]string, error) {
	// validate the pattern before touching the filesystem
	if _, err := filepath.Match(fs.conf.Pattern, ""); err != nil {
		return nil, err
	}
	isDir, err := afero.DirExists(fs.fs, fs.dir)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, errors.DirectoryNotFoundError{Path: fs.dir}
	}
	var matches []string
	if fs.conf.Recursive {
		err = afero.Walk(fs.fs, fs.dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if fs.matches(info.Name()) {
				matches = append(matches, path)
			}
			return nil
		})
	} else {
		var infos []os.FileInfo
		infos, err = afero.ReadDir(fs.fs, fs.dir)
		for _, info := range infos {
			if info.IsDir() {
				continue
			}
			if fs.matches(info.Name()) {
				matches = append(matches, filepath.Join(fs.dir, info.Name()))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, errors.NoMatchingFilesError{Path: fs.dir, Pattern: fs.conf.Pattern}
	}
	sort.Strings(matches)
	return matches, nil
}

// matches returns true iff a file's base name satisfies both the Pattern and the Extensions of this DataSource
func (fs *DataSource) matches(name string) bool {
	if ok, _ := filepath.Match(fs.conf.Pattern, name); !ok {
		return false
	}
	if len(fs.conf.Extensions) == 0 {
		return true
	}
	lower := strings.TrimSuffix(strings.ToLower(name), CompressedExtension)
	for _, ext := range fs.conf.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
