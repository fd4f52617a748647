package s3

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "key leading slash", prefix: "root", key: "/user/file.pdf", want: "root/user/file.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "user/file.pdf", want: "root/sub/user/file.pdf"},
		{name: "empty key", prefix: "root", key: "", want: "root"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestEscapeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "space", key: "user/my file.pdf", want: "user/my%20file.pdf"},
		{name: "percent", key: "user/100%.pdf", want: "user/100%25.pdf"},
		{name: "slashes preserved", key: "a/b/c.pdf", want: "a/b/c.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := escapeKey(tt.key); got != tt.want {
				t.Fatalf("escapeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestPublicURLDerived(t *testing.T) {
	t.Parallel()

	s := &Store{bucket: "documents", region: "us-east-1", prefix: "root"}
	got := s.PublicURL("user-1/abc.pdf")
	want := "https://documents.s3.us-east-1.amazonaws.com/root/user-1/abc.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestPublicURLBaseOverride(t *testing.T) {
	t.Parallel()

	s := &Store{bucket: "documents", region: "us-east-1", publicBaseURL: "https://cdn.example.com/files"}
	got := s.PublicURL("user-1/abc.pdf")
	want := "https://cdn.example.com/files/user-1/abc.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestPublicURLEscapesSegments(t *testing.T) {
	t.Parallel()

	s := &Store{bucket: "documents", region: "eu-west-1"}
	got := s.PublicURL("user-1/my report.pdf")
	want := "https://documents.s3.eu-west-1.amazonaws.com/user-1/my%20report.pdf"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestIsPreconditionFailed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "precondition failed",
			err:  &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"},
			want: true,
		},
		{
			name: "wrapped precondition failed",
			err:  fmt.Errorf("operation error S3: PutObject: %w", &smithy.GenericAPIError{Code: "PreconditionFailed"}),
			want: true,
		},
		{
			name: "other api error",
			err:  &smithy.GenericAPIError{Code: "AccessDenied"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isPreconditionFailed(tt.err); got != tt.want {
				t.Fatalf("isPreconditionFailed(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
