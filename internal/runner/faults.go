package runner

import (
	"errors"
	"strings"

	"github.com/joomcode/errorx"
)

// Faults are every way a run can fail; none of them are recoverable.
var (
	Faults = errorx.NewNamespace("sbrain")

	FileAccessFault    = Faults.NewType("file_access")
	ParseFault         = Faults.NewType("parse")
	CompileFault       = Faults.NewType("compile")
	LoadFault          = Faults.NewType("load")
	ConfigurationFault = Faults.NewType("configuration")
	InternalFault      = Faults.NewType("internal")

	faultTypes = []*errorx.Type{
		FileAccessFault,
		ParseFault,
		CompileFault,
		LoadFault,
		ConfigurationFault,
		InternalFault,
	}
)

// FaultOf returns the fault type of err, or nil if err is not a fault.
func FaultOf(err error) *errorx.Type {
	for _, typ := range faultTypes {
		if errorx.IsOfType(err, typ) {
			return typ
		}
	}
	return nil
}

// Cause searches err's chain, including errorx causes, for an error of type T.
func Cause[T error](err error) (T, bool) {
	for err != nil {
		if target, ok := err.(T); ok {
			return target, true
		}
		if ex := errorx.Cast(err); ex != nil {
			err = ex.Cause()
		} else {
			err = errors.Unwrap(err)
		}
	}
	var zero T
	return zero, false
}

// Message describes err for a user without fault type names, joining each
// errorx message with that of its cause.
func Message(err error) string {
	var parts []string
	for err != nil {
		ex := errorx.Cast(err)
		if ex == nil {
			parts = append(parts, err.Error())
			break
		}
		if mess := ex.Message(); mess != "" {
			parts = append(parts, mess)
		}
		err = ex.Cause()
	}
	return strings.Join(parts, ": ")
}
