// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"fmt"
)

// EnumerationError is returned by Build when the device list, or any
// query needed to capture a device, could not be obtained.
type EnumerationError struct {
	Op  string
	Err error
}

func (e *EnumerationError) Error() string {
	var qe *QueryError
	if errors.As(e.Err, &qe) {
		return qe.Error()
	}
	return e.Op + "(): " + e.Err.Error()
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// QueryError is a failed capability query on a single device.
type QueryError struct {
	Op     string
	Device int
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s()[%d]: %s", e.Op, e.Device, e.Err.Error())
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// PresentationQueryError is a failure of the presentation support query
// itself. A family that cannot present is not an error.
type PresentationQueryError struct {
	Device int
	Family uint32
	Err    error
}

func (e *PresentationQueryError) Error() string {
	return fmt.Sprintf("QueryPresentationSupport()[%d/%d]: %s", e.Device, e.Family, e.Err.Error())
}

func (e *PresentationQueryError) Unwrap() error {
	return e.Err
}
