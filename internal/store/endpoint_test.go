package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare host gets https", input: "my-server.example.com", expected: "https://my-server.example.com"},
		{name: "existing https kept", input: "https://my-server.example.com", expected: "https://my-server.example.com"},
		{name: "existing http kept", input: "http://my-server.example.com", expected: "http://my-server.example.com"},
		{name: "uppercase scheme kept", input: "HTTPS://my-server.example.com", expected: "HTTPS://my-server.example.com"},
		{name: "trailing slash stripped", input: "https://my-server.example.com/", expected: "https://my-server.example.com"},
		{name: "many trailing slashes stripped", input: "my-server.example.com///", expected: "https://my-server.example.com"},
		{name: "whitespace trimmed", input: "  my-server.example.com  ", expected: "https://my-server.example.com"},
		{name: "empty is absent", input: "", expected: ""},
		{name: "blank is absent", input: "   ", expected: ""},
		{name: "port and path survive", input: "my-server.example.com:3000/base", expected: "https://my-server.example.com:3000/base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"my-server.example.com",
		"https://my-server.example.com/",
		"  http://my-server.example.com///  ",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestEndpointStoreSetGet(t *testing.T) {
	s := NewEndpointStore(NewMemStorage())

	assert.Equal(t, "", s.Get())

	got := s.Set("my-server.example.com/")
	assert.Equal(t, "https://my-server.example.com", got)
	assert.Equal(t, "https://my-server.example.com", s.Get())
}

func TestEndpointStoreSetEmptyClears(t *testing.T) {
	storage := NewMemStorage()
	s := NewEndpointStore(storage)
	s.Set("my-server.example.com")

	s.Set("   ")
	assert.Equal(t, "", s.Get())
	assert.Equal(t, "", storage.GetString(KeyServerURL))
}

func TestEndpointStoreClearRereadsStorage(t *testing.T) {
	storage := NewMemStorage()
	s := NewEndpointStore(storage)
	s.Set("my-server.example.com")

	s.Clear()
	assert.Equal(t, "", s.Get())

	// A write behind the store's back is picked up after Clear, since Clear
	// resets the read-once cache.
	storage.Set(KeyServerURL, "https://other.example.com")
	s.Clear()
	storage.Set(KeyServerURL, "https://other.example.com")
	assert.Equal(t, "https://other.example.com", s.Get())

	// The cache now serves reads; later storage changes are not observed.
	storage.Set(KeyServerURL, "https://third.example.com")
	assert.Equal(t, "https://other.example.com", s.Get())
}

func TestEndpointStoreNormalizesStoredValue(t *testing.T) {
	storage := NewMemStorage()
	storage.Set(KeyServerURL, "my-server.example.com/")

	s := NewEndpointStore(storage)
	assert.Equal(t, "https://my-server.example.com", s.Get())
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "my-server.example.com", HostOf("https://my-server.example.com"))
	assert.Equal(t, "my-server.example.com", HostOf("http://my-server.example.com"))
	assert.Equal(t, "", HostOf(""))
}

func TestAPIBaseOf(t *testing.T) {
	assert.Equal(t, "https://s.example.com/api", APIBaseOf("https://s.example.com"))
	assert.Equal(t, "https://s.example.com/api", APIBaseOf("https://s.example.com/api"))
	assert.Equal(t, "", APIBaseOf(""))
}

func TestAPIBaseURL(t *testing.T) {
	s := NewEndpointStore(NewMemStorage())
	require.Equal(t, "", s.APIBaseURL())

	s.Set("my-server.example.com")
	assert.Equal(t, "https://my-server.example.com/api", s.APIBaseURL())
}
