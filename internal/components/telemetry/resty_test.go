package telemetry

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex sync.Mutex
	files map[string]string
}

func (o *memoryOutput) Write(id, contents string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.files[id] = contents
}

func TestRedactForm(t *testing.T) {
	require.Equal(t, "a=1&b=2", redactForm("a=1&b=2"))
	require.Equal(
		t,
		"ctl00%24txtEmail=op%40example.com&ctl00%24txtSenha=%3Credacted%3E",
		redactForm("ctl00%24txtEmail=op%40example.com&ctl00%24txtSenha=segredo"),
	)
	require.Equal(t, "<html>%zz", redactForm("<html>%zz"))
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	out := &memoryOutput{files: map[string]string{}}
	tel := &Recorder{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, tel, out)

	_, err := client.R().Get("/portal/index.aspx")
	require.NoError(t, err)
	_, err = client.R().
		SetFormData(map[string]string{
			"ctl00$txtEmail": "op@example.com",
			"ctl00$txtSenha": "segredo",
		}).
		Post("/portal/index.aspx")
	require.NoError(t, err)

	require.Len(t, out.files, 2)
	require.Contains(t, out.files, "001_get_index.aspx.txt")
	post, ok := out.files["002_post_index.aspx.txt"]
	require.True(t, ok)
	require.NotContains(t, post, "segredo")
	require.NotContains(t, post, "abc")
	require.Contains(t, post, "op%40example.com")
	require.Contains(t, post, "< 200")

	require.Len(t, tel.Find("debug"), 4)
	require.Empty(t, tel.Find("broken"))
}
