package internal

import (
	"errors"

	"github.com/lychee-technology/xrosedb"
)

// engine result code for a bind index out of range
const sqliteRange = 25

// Bind converts one bindable into its database/sql argument.
func Bind(v any) (any, error) {
	val, err := xrosedb.NewValue(v)
	if err != nil {
		return nil, err
	}
	return val.Driver(), nil
}

// BindAll converts bindables into positional arguments. A nil bindable binds
// NULL explicitly so no value carries over between subqueries.
func BindAll(bindables []any) ([]any, error) {
	args := make([]any, len(bindables))
	for i, b := range bindables {
		arg, err := Bind(b)
		if err != nil {
			var se *xrosedb.StoreError
			if errors.As(err, &se) {
				se.WithDetail("parameter", i+1)
			}
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// CountPlaceholders counts the parameters SQLite will expect for sql.
// A bare ? takes the number after the largest so far, ?NNN sets the number
// explicitly, and each distinct :name, @name or $name takes a new number.
// Quoted text and comments are skipped.
func CountPlaceholders(sql string) int {
	highest := 0
	named := make(map[string]bool)
	assign := func(n int) {
		if n > highest {
			highest = n
		}
	}

	for i := 0; i < len(sql); i++ {
		switch c := sql[i]; c {
		case '\'', '"', '`':
			i = skipQuoted(sql, i, c)
		case '[':
			i = skipQuoted(sql, i, ']')
		case '-':
			if i+1 < len(sql) && sql[i+1] == '-' {
				for i < len(sql) && sql[i] != '\n' {
					i++
				}
			}
		case '/':
			if i+1 < len(sql) && sql[i+1] == '*' {
				i += 2
				for i+1 < len(sql) && !(sql[i] == '*' && sql[i+1] == '/') {
					i++
				}
				i++
			}
		case '?':
			j := i + 1
			n := 0
			for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
				n = n*10 + int(sql[j]-'0')
				j++
			}
			if j > i+1 {
				assign(n)
				i = j - 1
			} else {
				assign(highest + 1)
			}
		case ':', '@', '$':
			j := i + 1
			for j < len(sql) && isIdentByte(sql[j]) {
				j++
			}
			if j == i+1 {
				continue
			}
			name := sql[i:j]
			if !named[name] {
				named[name] = true
				assign(highest + 1)
			}
			i = j - 1
		}
	}
	return highest
}

func skipQuoted(sql string, start int, closing byte) int {
	for i := start + 1; i < len(sql); i++ {
		if sql[i] == closing {
			if closing != ']' && i+1 < len(sql) && sql[i+1] == closing {
				i++
				continue
			}
			return i
		}
	}
	return len(sql)
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
