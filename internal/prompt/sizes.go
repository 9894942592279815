package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/DjordjeVuckovic/sort-energy-bench/internal/apperr"
	"github.com/mattn/go-isatty"
)

const SizesMessage = "Input sizes, comma separated (e.g. 1000,5000,20000):"

// askOne and isTerminal are swapped out in tests.
var (
	askOne     = survey.AskOne
	isTerminal = func(in io.Reader) bool {
		f, ok := in.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
)

// AskSizes prompts for input sizes. A terminal gets an interactive prompt,
// anything else is read as a single line.
func AskSizes(in io.Reader, out io.Writer) ([]int, error) {
	answer, err := readAnswer(in, out)
	if err != nil {
		return nil, err
	}
	return ParseSizes(answer)
}

func readAnswer(in io.Reader, out io.Writer) (string, error) {
	if isTerminal(in) {
		var answer string
		err := askOne(&survey.Input{
			Message: SizesMessage,
			Help:    "Each size is the number of random integers sorted by every algorithm.",
		}, &answer)
		if err != nil {
			return "", fmt.Errorf("prompt input sizes: %w", err)
		}
		return answer, nil
	}

	fmt.Fprint(out, SizesMessage+" ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input sizes: %w", err)
	}
	return line, nil
}

// ParseSizes parses a comma separated list of non-negative integers, keeping their order.
func ParseSizes(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid input size %q: %w", p, err)
		}
		if v < 0 {
			return nil, apperr.NewValidationf("input size must not be negative, got %d", v)
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}
