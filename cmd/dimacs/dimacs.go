package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Dimacs contains the variables and clauses that make up
// a CNF problem described in DIMACS format
// see: https://logic.pdmi.ras.ru/~basolver/dimacs.html
type Dimacs struct {
	numVariables int
	clauses      [][]int
}

// NumVariables returns the number of variables declared in the header.
// Variables are numbered from 1 to NumVariables.
func (d *Dimacs) NumVariables() int {
	return d.numVariables
}

// Clauses returns the clauses as signed variable numbers, a negative
// number meaning 'not'.
func (d *Dimacs) Clauses() [][]int {
	return d.clauses
}

// Satisfied returns true if every clause holds under the assignment,
// where assignment[i] is the value of variable i+1.
func (d *Dimacs) Satisfied(assignment []bool) bool {
	for _, clause := range d.clauses {
		satisfied := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if v > len(assignment) {
				continue
			}
			if assignment[v-1] == (lit > 0) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

var (
	commentLine = regexp.MustCompile(`^c(\s.*)?$`)
	headerLine  = regexp.MustCompile(`^p\s+cnf\s+\d+\s+\d+$`)
	clauseLine  = regexp.MustCompile(`^(-?\d+\s+)*0$`)
)

// NewDimacs creates a Dimacs struct with the values
// parsed from the DIMACS formatted stream afforded by dimacsReader
func NewDimacs(dimacsReader io.Reader) (*Dimacs, error) {
	scanner := bufio.NewScanner(dimacsReader)

	numVariables := 0
	numClauses := 0
	headerSeen := false
	var clauses [][]int
	variableSet := map[int]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || commentLine.MatchString(line) {
			continue
		}

		if headerLine.MatchString(line) {
			if headerSeen {
				return nil, fmt.Errorf("invalid statement: (%s). Duplicate header", line)
			}
			fields := strings.Fields(line)
			// the regular expression guarantees both fields are numbers
			numVariables, _ = strconv.Atoi(fields[2])
			numClauses, _ = strconv.Atoi(fields[3])
			clauses = make([][]int, 0, numClauses)
			headerSeen = true
			continue
		}

		if clauseLine.MatchString(line) {
			if !headerSeen {
				return nil, fmt.Errorf("invalid dimacs format: missing header 'p cnf <variables> <clauses>'")
			}
			clause, err := parseClause(strings.Fields(line), numVariables)
			if err != nil {
				return nil, fmt.Errorf("invalid clause (%s): %w", line, err)
			}
			for _, lit := range clause {
				if lit < 0 {
					lit = -lit
				}
				variableSet[lit] = struct{}{}
			}
			clauses = append(clauses, clause)
			continue
		}

		return nil, fmt.Errorf("invalid dimacs command: %s", line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dimacs data: %w", err)
	}

	if numVariables == 0 || numClauses == 0 || len(clauses) == 0 {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}
	if len(clauses) != numClauses {
		return nil, fmt.Errorf("invalid format: number of clauses in header differ from the total number of clauses")
	}
	if len(variableSet) != numVariables {
		return nil, fmt.Errorf("invalid format: number of variables in header differ from the total number of unique variables found in clauses")
	}

	return &Dimacs{
		numVariables: numVariables,
		clauses:      clauses,
	}, nil
}

// parseClause converts the fields of a clause line, dropping the terminating 0.
func parseClause(fields []string, numVariables int) ([]int, error) {
	fields = fields[:len(fields)-1]
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty clause")
	}
	clause := make([]int, 0, len(fields))
	for _, f := range fields {
		lit, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", f)
		}
		if lit == 0 {
			return nil, fmt.Errorf("0 is not a valid variable")
		}
		if lit > numVariables || lit < -numVariables {
			return nil, fmt.Errorf("%s is not a valid variable", f)
		}
		clause = append(clause, lit)
	}
	return clause, nil
}
