package utils

import (
	"errors"
	"fmt"
)

// ErrorClass partitions failures into the process exit-code contract:
// 1 file/directory, 2 data read/write, 3 calculation, 4 invocation
// arguments, 5 memory/resource. Success is 0.
type ErrorClass int

const (
	ClassFile ErrorClass = iota + 1
	ClassData
	ClassCalc
	ClassArgs
	ClassResource
)

func (ec ErrorClass) String() string {
	switch ec {
	case ClassFile:
		return "file"
	case ClassData:
		return "data"
	case ClassCalc:
		return "calculation"
	case ClassArgs:
		return "arguments"
	case ClassResource:
		return "resource"
	}
	return "unknown"
}

// ClassedError wraps an error with its exit-code class. Library layers
// return these; only main maps them to os.Exit codes.
type ClassedError struct {
	Class ErrorClass
	Err   error
}

func (ce *ClassedError) Error() string {
	return fmt.Sprintf("%s error: %s", ce.Class, ce.Err)
}

func (ce *ClassedError) Unwrap() error { return ce.Err }

func ErrorWithClass(class ErrorClass, format string, args ...interface{}) error {
	return &ClassedError{Class: class, Err: fmt.Errorf(format, args...)}
}

func FileErrorf(format string, args ...interface{}) error {
	return ErrorWithClass(ClassFile, format, args...)
}

func DataErrorf(format string, args ...interface{}) error {
	return ErrorWithClass(ClassData, format, args...)
}

func CalcErrorf(format string, args ...interface{}) error {
	return ErrorWithClass(ClassCalc, format, args...)
}

func ArgsErrorf(format string, args ...interface{}) error {
	return ErrorWithClass(ClassArgs, format, args...)
}

func ResourceErrorf(format string, args ...interface{}) error {
	return ErrorWithClass(ClassResource, format, args...)
}

// ExitCode reports the process exit status for err: 0 for nil, the error
// class for classed errors, and the calculation class for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *ClassedError
	if errors.As(err, &ce) {
		return int(ce.Class)
	}
	return int(ClassCalc)
}
