package mock

import "github.com/fwojciec/wikicollect"

var _ wikicollect.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikicollect.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ wikicollect.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of wikicollect.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}
