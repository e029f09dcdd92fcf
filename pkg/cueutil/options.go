// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted size for user-provided CUE
// files. Large inputs are rejected before compilation.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    false,
	}
}

// Option configures ParseAndDecode.
type Option func(*options)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides the maximum accepted input size.
func WithMaxFileSize(size int64) Option {
	return func(o *options) { o.maxFileSize = size }
}

// WithConcrete requires all values to be concrete during validation.
// Leave unset for schemas whose fields are optional.
func WithConcrete() Option {
	return func(o *options) { o.concrete = true }
}
