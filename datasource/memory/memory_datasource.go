package memory

import (
	dataset "github.com/YashJipkate/skyhookdm-arrow"
)

// Dataset is an in-memory Dataset composed of a fixed set of Fragments
// sharing one Schema
type Dataset struct {
	schema    dataset.Schema
	fragments []dataset.Fragment
}

// CreateDataset is a factory for in-memory Datasets
func CreateDataset(schema dataset.Schema, fragments ...dataset.Fragment) *Dataset {
	return &Dataset{schema: schema, fragments: fragments}
}

// Schema returns the Schema shared by this Dataset's Fragments
func (ds *Dataset) Schema() dataset.Schema {
	return ds.schema
}

// GetFragments returns a single-pass iterator over this Dataset's
// Fragments. In-memory fragments carry no statistics, so the predicate
// cannot prune anything here.
func (ds *Dataset) GetFragments(filter dataset.Expression) (dataset.FragmentIterator, error) {
	return dataset.CreateFragmentSliceIterator(ds.fragments), nil
}
