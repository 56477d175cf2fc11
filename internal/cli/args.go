package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/spf13/pflag"
)

var errBlankInput = errors.New("value must not be blank")

// parseDay parses a day number argument; "7" and "day7" are both accepted.
func parseDay(arg string) (int, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(arg)), "day")
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("invalid day %q: expected a positive number", arg)
	}
	return day, nil
}

// filterFlag adapts domain.FilterMode to pflag.Value for --filter.
type filterFlag struct {
	mode domain.FilterMode
}

var _ pflag.Value = (*filterFlag)(nil)

func newFilterFlag() *filterFlag {
	return &filterFlag{mode: domain.FilterAll}
}

func (f *filterFlag) String() string { return string(f.mode) }

func (f *filterFlag) Set(s string) error {
	m, err := domain.ParseFilterMode(s)
	if err != nil {
		return err
	}
	f.mode = m
	return nil
}

func (f *filterFlag) Type() string { return "filter" }
