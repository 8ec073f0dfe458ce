// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmapi/olmapi/internal/proptag"
)

func TestDescribeTag_ByName(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var info proptag.Info
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags/PR_CONVERSATION_TOPIC_A", nil), &info)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0x0070001E", info.Hex)
	assert.Equal(t, uint16(0x0070), info.ID)
	assert.Equal(t, "PT_STRING8", info.TypeName)
	assert.Equal(t, "PR_CONVERSATION_TOPIC_A", info.Name)
	assert.False(t, info.MultiValued)
	assert.False(t, info.Named)
}

func TestDescribeTag_ByHex(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var info proptag.Info
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags/0x8233101F", nil), &info)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint16(0x8233), info.ID)
	assert.Equal(t, "PT_MV_UNICODE", info.TypeName)
	assert.True(t, info.MultiValued)
	assert.True(t, info.Named, "IDs at 0x8000 and above are named properties")
	assert.Empty(t, info.Name)
}

func TestDescribeTag_Malformed(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var body errorBody
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags/banana", nil), &body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MAPI_E_INVALID_PARAMETER", body.Name)
	assert.Equal(t, "0x80070057", body.Code)
	assert.NotEmpty(t, body.Detail)
}

func TestListTags_All(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp tagListResponse
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags", nil), &resp)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, len(resp.Tags), resp.Count)
	require.NotEmpty(t, resp.Tags)

	for i := 1; i < len(resp.Tags); i++ {
		assert.Less(t, uint32(resp.Tags[i-1].Tag), uint32(resp.Tags[i].Tag), "tags must be sorted")
	}
}

func TestListTags_FilterByType(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var resp tagListResponse
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags?type=PT_STRING8", nil), &resp)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp.Tags)

	names := make([]string, 0, len(resp.Tags))
	for _, info := range resp.Tags {
		assert.Equal(t, "PT_STRING8", info.TypeName)
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "PR_CONVERSATION_TOPIC_A")
}

func TestListTags_UnknownType(t *testing.T) {
	srv := newTestServer(t, testConfig())

	var body errorBody
	w := doJSON(t, srv, httptest.NewRequest(http.MethodGet, "/api/tags?type=PT_BANANA", nil), &body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MAPI_E_INVALID_TYPE", body.Name)
}
