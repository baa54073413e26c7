package args

import (
	"fmt"
	"strconv"
)

// Optional is a flag.Value which remembers whether it has been set.
//
// Use it for flags whose zero value is meaningful on the wire,
// so that an unset flag can be told apart from an explicit zero.
type Optional[T interface{ String() string }] struct {
	value  T
	parser func(string) (T, error)
	isSet  bool
}

func (i *Optional[T]) String() string {
	if i == nil || !i.isSet {
		return ""
	}
	return i.value.String()
}

func (i *Optional[T]) Set(s string) error {
	v, err := i.parser(s)
	if err != nil {
		return err
	}
	i.isSet = true
	i.value = v
	return nil
}

func (i *Optional[T]) Value() T {
	if i == nil {
		return *new(T)
	}
	return i.value
}

func (i *Optional[T]) IsSet() bool {
	return i != nil && i.isSet
}

// Ptr returns a pointer to the value if it is set, or nil.
func (i *Optional[T]) Ptr() *T {
	if !i.IsSet() {
		return nil
	}
	v := i.value
	return &v
}

func Parser[T interface{ String() string }](parser func(string) (T, error)) *Optional[T] {
	return &Optional[T]{parser: parser}
}

// Int is an integer flag value.
type Int int

func (i Int) String() string {
	return strconv.Itoa(int(i))
}

func ParseInt(s string) (Int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return Int(v), nil
}

// ParsePositive accepts integers greater than zero, for ids and page numbers.
func ParsePositive(s string) (Int, error) {
	v, err := ParseInt(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("should be positive: %q", s)
	}
	return v, nil
}

// Float is a decimal flag value.
type Float float64

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func ParseFloat(s string) (Float, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return Float(v), nil
}

func OptionalInt() *Optional[Int] {
	return Parser(ParseInt)
}

func OptionalPositive() *Optional[Int] {
	return Parser(ParsePositive)
}

func OptionalFloat() *Optional[Float] {
	return Parser(ParseFloat)
}
