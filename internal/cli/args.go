package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-dws/pkg/fileinput"
	"github.com/askiada/go-dws/pkg/pipeline/model"
)

// StdinArg is the input argument reading standard input.
const StdinArg = "-"

var ErrInvalidRange = errors.New("invalid page range")

func (a *app) input(arg string) fileinput.Input {
	if arg == StdinArg {
		return fileinput.Stream{Reader: a.stdin, Name: "stdin"}
	}

	return fileinput.Path(arg)
}

func (a *app) inputs(args []string) []fileinput.Input {
	res := make([]fileinput.Input, 0, len(args))
	for _, arg := range args {
		res = append(res, a.input(arg))
	}

	return res
}

// ParseRange parses "start:end" into a page range. The end is exclusive and may be omitted
// to run to the last page.
func ParseRange(value string) (model.PageRange, error) {
	startValue, endValue, found := strings.Cut(value, ":")
	if !found {
		return model.PageRange{}, errors.Wrapf(ErrInvalidRange, "%q: expected start:end", value)
	}

	start, err := strconv.Atoi(strings.TrimSpace(startValue))
	if err != nil {
		return model.PageRange{}, errors.Wrapf(ErrInvalidRange, "%q: bad start", value)
	}

	endValue = strings.TrimSpace(endValue)
	if endValue == "" {
		return model.From(start), nil
	}

	end, err := strconv.Atoi(endValue)
	if err != nil {
		return model.PageRange{}, errors.Wrapf(ErrInvalidRange, "%q: bad end", value)
	}

	return model.Range(start, end), nil
}

// ParseRanges parses every value with ParseRange.
func ParseRanges(values []string) ([]model.PageRange, error) {
	res := make([]model.PageRange, 0, len(values))

	for _, value := range values {
		rng, err := ParseRange(value)
		if err != nil {
			return nil, err
		}

		res = append(res, rng)
	}

	return res, nil
}
