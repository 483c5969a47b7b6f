package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore is a KVStore kept in a single YAML file
type FileStore struct {
	path string
}

// storeFile is the on-disk layout of a FileStore
type storeFile struct {
	Version   string            `yaml:"version"`
	UpdatedAt time.Time         `yaml:"updated_at"`
	Values    map[string]string `yaml:"values"`
}

const fileStoreVersion = "1.0"

// NewFileStore creates a FileStore at path; the file is created on first write
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the path of the backing file
func (fs *FileStore) Path() string {
	return fs.path
}

// Get implements KVStore
func (fs *FileStore) Get(key string) (string, bool, error) {
	f, err := fs.load()
	if err != nil {
		return "", false, err
	}
	v, ok := f.Values[key]
	return v, ok, nil
}

// Set implements KVStore
func (fs *FileStore) Set(key, value string) error {
	f, err := fs.load()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write
		LogWarn("Replacing unreadable store %s: %v", fs.path, err)
		f = &storeFile{Values: make(map[string]string)}
	}
	f.Values[key] = value
	return fs.save(f)
}

// Remove implements KVStore
func (fs *FileStore) Remove(key string) error {
	f, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := f.Values[key]; !ok {
		return nil
	}
	delete(f.Values, key)
	return fs.save(f)
}

func (fs *FileStore) load() (*storeFile, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return &storeFile{Values: make(map[string]string)}, nil
	}
	if err != nil {
		return nil, &StorageError{Path: fs.path, Op: "get", Err: err}
	}

	var f storeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &StorageError{Path: fs.path, Op: "get", Err: fmt.Errorf("failed to unmarshal store: %w", err)}
	}
	if f.Values == nil {
		f.Values = make(map[string]string)
	}
	return &f, nil
}

func (fs *FileStore) save(f *storeFile) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return &StorageError{Path: fs.path, Op: "set", Err: err}
	}

	f.Version = fileStoreVersion
	f.UpdatedAt = time.Now()
	data, err := yaml.Marshal(f)
	if err != nil {
		return &StorageError{Path: fs.path, Op: "set", Err: fmt.Errorf("failed to marshal store: %w", err)}
	}

	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return &StorageError{Path: fs.path, Op: "set", Err: err}
	}
	return nil
}
