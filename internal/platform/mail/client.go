package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/pkg/errors"
)

// Client sends mail through an SMTP relay with STARTTLS. Credentials come
// from the environment; an empty sender address disables delivery.
type Client struct {
	From     string
	Password string
	Host     string
	Port     int
}

func NewClient(from, password, host string, port int) *Client {
	return &Client{
		From:     from,
		Password: password,
		Host:     host,
		Port:     port,
	}
}

// Enabled reports whether the client has credentials to send with.
func (c *Client) Enabled() bool {
	return c.From != ""
}

// SendMessage sends a plain-text message.
func (c *Client) SendMessage(to, subject, body string) error {
	return c.send(to, buildMessage(c.From, to, subject, body, nil, ""))
}

// SendDocument sends a message with a binary attachment (for PDFs).
func (c *Client) SendDocument(to, subject, body string, file []byte, filename string) error {
	return c.send(to, buildMessage(c.From, to, subject, body, file, filename))
}

func (c *Client) send(to string, msg []byte) error {
	if !c.Enabled() {
		return errors.New("mail client not configured")
	}
	addr := fmt.Sprintf("%s:%d", c.Host, c.Port)
	auth := smtp.PlainAuth("", c.From, c.Password, c.Host)
	if err := smtp.SendMail(addr, auth, c.From, []string{to}, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}
	return nil
}

func buildMessage(from, to, subject, body string, file []byte, filename string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(file) == 0 {
		buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
		buf.WriteString(body)
		return buf.Bytes()
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	text, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="utf-8"`},
	})
	text.Write([]byte(body))

	attach, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	writeBase64(attach, file)

	mw.Close()
	return buf.Bytes()
}

// writeBase64 emits the encoded payload folded at 76 columns; SMTP rejects
// lines over 998 octets.
func writeBase64(w io.Writer, data []byte) {
	const lineLen = 76
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := lineLen
		if n > len(encoded) {
			n = len(encoded)
		}
		w.Write([]byte(encoded[:n]))
		w.Write([]byte("\r\n"))
		encoded = encoded[n:]
	}
}
