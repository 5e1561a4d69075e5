package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ardanlabs/learnchain/foundation/ledger/database"
	"github.com/ardanlabs/learnchain/foundation/ledger/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// submit signs a message with the wallet key and posts it with the fields
// of the operation to the relay. The response body is printed as is.
func submit(route string, fields map[string]any) error {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return err
	}

	address := database.PublicKeyToAddress(privateKey.PublicKey)
	message := fmt.Sprintf("%s %s", address, route)

	sig, err := signature.SignMessage(message, privateKey)
	if err != nil {
		return err
	}

	body := map[string]any{
		"address":   address,
		"message":   message,
		"signature": sig,
	}
	for k, v := range fields {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/%s", relayURL, route), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

// query gets the route from the relay and prints the response body.
func query(route string) error {
	resp, err := http.Get(fmt.Sprintf("%s/v1/%s", relayURL, route))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

// escapeRoute joins the path segments of a relay route, escaping each one so an
// id holding a slash or a query character stays a single segment.
func escapeRoute(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}

	return strings.Join(escaped, "/")
}

// selfOr returns the address if one is provided, otherwise the address of
// the wallet key.
func selfOr(address string) (string, error) {
	if address != "" {
		return address, nil
	}

	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return "", err
	}

	return string(database.PublicKeyToAddress(privateKey.PublicKey)), nil
}

// printResponse prints the JSON body indented and reports a failed request.
func printResponse(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		out.Reset()
		out.Write(data)
	}
	fmt.Println(out.String())

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay responded %s", resp.Status)
	}

	return nil
}
