package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/smnsjas/go-soaptransport/client"
	"github.com/smnsjas/go-soaptransport/soap"
)

func Example() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<s:Envelope><s:Body>%s</s:Body></s:Envelope>", r.Header.Get("SOAPAction"))
	}))
	defer server.Close()

	c, err := client.New(server.URL, client.Options{PersistanceFactor: 3})
	if err != nil {
		fmt.Println(err)
		return
	}

	resp, err := c.Call(context.Background(), "<s:Envelope/>", "", "urn:Ping", soap.V1, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(resp)

	code, _ := c.LastConnErrNo()
	fmt.Println(code)
	// Output:
	// <s:Envelope><s:Body>"urn:Ping"</s:Body></s:Envelope>
	// 0
}

func ExampleClient_SetPersistanceFactor() {
	c, _ := client.New("http://localhost/service", client.Options{})

	if err := c.SetPersistanceFactor(0); err != nil {
		fmt.Println(err)
	}
	// Output:
	// client: invalid persistance factor: must be at least 1, got 0
}
