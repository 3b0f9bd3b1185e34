/*
 * Copyright 2026 Kasabi SDK Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kasabi

import (
	"errors"
	"fmt"
	"io"
)

// Error kinds. Every *Error matches exactly one of them with errors.Is.
var (
	// ErrTransport is a connection, timeout or read failure.
	ErrTransport = errors.New("transport error")
	// ErrStatus is a response with a status code outside 2xx.
	ErrStatus = errors.New("unexpected response status")
	// ErrIO is a failure reading or writing a local file.
	ErrIO = errors.New("i/o error")
	// ErrFormat is a response body that could not be interpreted.
	ErrFormat = errors.New("unexpected response format")
)

var (
	// ErrMissingAPIKey is returned by NewClient when Config.APIKey is empty.
	ErrMissingAPIKey = errors.New("api key is required")
	// ErrNoStatusHandle is returned when polling before any update was submitted.
	ErrNoStatusHandle = errors.New("no update status handle recorded")
	// ErrInvalidArgument is returned for arguments that can never succeed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error is the error returned by client operations.
type Error struct {
	// Kind is one of ErrTransport, ErrStatus, ErrIO or ErrFormat.
	Kind error
	// Op names the failed operation, e.g. "query" or "split".
	Op string
	// Response is the offending response for ErrStatus errors.
	Response *Response
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Response != nil:
		return fmt.Sprintf("%s: %s: %d: %s", e.Op, e.Kind, e.Response.StatusCode, bodySnippet(e.Response.Body))
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// UploadError reports the part at which a multi-part upload stopped.
//
// Uploads are not transactional: parts listed in Uploaded were accepted by the
// service and stay applied. The failed part and the parts after it were never
// applied and, if synthetic, are still on disk.
type UploadError struct {
	// Part is the part whose upload failed.
	Part PartFile
	// Remaining are the parts that were not attempted.
	Remaining []PartFile
	// Uploaded are the status handles of the parts accepted before the failure.
	Uploaded []StatusHandle
	// Err is the cause, usually an *Error.
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload stopped at part %d (%s) after %d accepted parts: %v",
		e.Part.Index, e.Part.Path, len(e.Uploaded), e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// checkStatus2xx returns an ErrStatus error unless the response is in the 2xx range.
func checkStatus2xx(op string, resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &Error{Kind: ErrStatus, Op: op, Response: resp}
}

const maxSnippet = 256

func bodySnippet(body []byte) string {
	if len(body) > maxSnippet {
		return string(body[:maxSnippet]) + "..."
	}
	return string(body)
}

// sneakyBodyClose closes the body and ignores the error.
// This is useful to close the HTTP response body when we don't care about the error.
func sneakyBodyClose(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
