package premis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-premis"
)

func newEvent(t *testing.T, typ, detail, note string) *premis.Entity {
	t.Helper()
	args := premis.Args{
		"identifier_value": "e-1",
		"type":             typ,
		"date_time":        "2024-01-01T00:00:00",
	}
	if detail != "" {
		args["detail"] = detail
	}
	if note != "" {
		args["outcome_detail_note"] = note
	}
	e, err := premis.NewEvent(args)
	require.NoError(t, err)
	return e
}

func TestCompressionDetails(t *testing.T) {
	evt := loadFixture(t, "compression_event.xml")

	d, err := evt.CompressionDetails()
	require.NoError(t, err)
	require.Equal(t, premis.Details{
		Algorithm: "bzip2",
		Version:   "p7zip Version 9.20 (locale=en_US.UTF-8,Utf16=on,HugeFiles=on,2 CPUs)",
		Tool:      "7-Zip",
	}, d)

	files, err := evt.DecompressionTransformFiles(0)
	require.NoError(t, err)
	require.Equal(t, []premis.TransformFile{
		{Algorithm: "bzip2", Order: "1", Type: "decompression"},
	}, files)
	require.Equal(t, map[string]string{"algorithm": "bzip2", "order": "1", "type": "decompression"}, files[0].Attrs())
}

func TestDecompressionTransformFiles_Offset(t *testing.T) {
	evt := newEvent(t, "compression", "program=tar; algorithm=bzip2, gzip", "")

	files, err := evt.DecompressionTransformFiles(1)
	require.NoError(t, err)
	require.Equal(t, []premis.TransformFile{
		{Algorithm: "bzip2", Order: "2", Type: "decompression"},
		{Algorithm: "gzip", Order: "3", Type: "decompression"},
	}, files)
}

func TestEncryptionDetails(t *testing.T) {
	testCases := []struct {
		name     string
		detail   string
		note     string
		expected premis.Details
	}{
		{
			name:     "algorithm from program",
			detail:   "program=gpg (GPG); version=1.4.16; key=B4A1 6C2D",
			expected: premis.Details{Algorithm: "GPG", Version: "1.4.16", Tool: "gpg", Key: "B4A1 6C2D"},
		},
		{
			name:     "bare program",
			detail:   "program=openssl",
			expected: premis.Details{Algorithm: "openssl", Tool: "openssl"},
		},
		{
			name:     "note wins over detail",
			detail:   "program=gpg (GPG); version=1.4.16",
			note:     "algorithm: GPG; program: 7za; version: 1.0",
			expected: premis.Details{Algorithm: "GPG", Version: "1.0", Tool: "7-Zip"},
		},
		{
			name:     "note only",
			note:     `Program="gpg"; Algorithm='AES256'`,
			expected: premis.Details{Algorithm: "AES256", Tool: "gpg"},
		},
		{
			name:     "first occurrence wins",
			detail:   "algorithm=AES; algorithm=DES; program=x",
			expected: premis.Details{Algorithm: "AES", Tool: "x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			evt := newEvent(t, "encryption", tc.detail, tc.note)
			d, err := evt.EncryptionDetails()
			require.NoError(t, err)
			require.Equal(t, tc.expected, d)

			tf, err := evt.DecryptionTransformFile()
			require.NoError(t, err)
			require.Equal(t, premis.TransformFile{Algorithm: tc.expected.Algorithm, Order: "1", Type: "decryption"}, tf)
		})
	}
}

func TestEncryptionDetails_Fixture(t *testing.T) {
	evt := loadFixture(t, "encryption_event.xml")
	tf, err := evt.DecryptionTransformFile()
	require.NoError(t, err)
	require.Equal(t, premis.TransformFile{Algorithm: "GPG", Order: "1", Type: "decryption"}, tf)
}

func TestDerivedViews_Errors(t *testing.T) {
	compression := loadFixture(t, "compression_event.xml")
	encryption := loadFixture(t, "encryption_event.xml")
	agent := loadFixture(t, "agent.xml")

	_, err := compression.EncryptionDetails()
	require.ErrorIs(t, err, premis.ErrNotFound)
	require.ErrorContains(t, err, `expected a encryption event, got "compression"`)

	_, err = encryption.DecompressionTransformFiles(0)
	require.ErrorIs(t, err, premis.ErrNotFound)

	_, err = agent.CompressionDetails()
	require.ErrorIs(t, err, premis.ErrNotFound)
	require.ErrorContains(t, err, "not an event")

	_, err = newEvent(t, "compression", "program=7z; version=9.20", "").CompressionDetails()
	var nf *premis.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "algorithm", nf.Name)

	_, err = newEvent(t, "encryption", "version=1", "").DecryptionTransformFile()
	require.ErrorIs(t, err, premis.ErrNotFound)
}
