package wikicollect

import "context"

// DefaultSplit is the split name datasets are published under.
const DefaultSplit = "train"

// Dataset is the merged content of a directory of artifacts.
type Dataset struct {
	Name    string
	Records []*PageRecord
}

// Validate returns an error if the dataset cannot be published.
func (d *Dataset) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "dataset name required")
	}
	if err := ValidateSearchTerm(d.Name); err != nil {
		return Errorf(EINVALID, "dataset name %q is not a valid file name", d.Name)
	}
	if len(d.Records) == 0 {
		return Errorf(EINVALID, "dataset %q has no records", d.Name)
	}
	return nil
}

// SplitKey returns the relative location of the dataset's split file.
func (d *Dataset) SplitKey() string {
	return d.Name + "/" + DefaultSplit + ".jsonl"
}

// DatasetPublisher persists a dataset and returns where it was written.
type DatasetPublisher interface {
	Publish(ctx context.Context, ds *Dataset) (location string, err error)
}
