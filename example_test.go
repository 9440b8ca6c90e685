package enumtext_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/enumtext"
)

func Example_basic() {
	shape := enumtext.Positional(
		enumtext.Field{Type: "string", Caps: enumtext.CapStructured},
		enumtext.Field{Type: "i32", Caps: enumtext.CapIntegral},
	)
	r, err := enumtext.Compile(shape, "{0:?} failed with 0x{1:0x}")
	if err != nil {
		panic(err)
	}
	fmt.Println(enumtext.Render(r, "sync", 255))
	// Output: "sync" failed with 0xff
}

type FetchError interface {
	error
	fetchError()
}

type NotFound struct {
	Path string `text:"path"`
}

type Status struct {
	Code uint16 `text:"0"`
}

var fetchError = enumtext.MustNewTyped[FetchError]("FetchError",
	enumtext.Case[NotFound]("{path} not found"),
	enumtext.Case[Status]("unexpected status {0} (0x{0:0x})"),
)

func (e NotFound) Error() string { return fetchError.Render(e) }
func (e Status) Error() string   { return fetchError.Render(e) }

func (NotFound) fetchError() {}
func (Status) fetchError()   {}

func ExampleNewTyped() {
	var err error = NotFound{Path: "/etc/enumtext"}
	fmt.Println(err)
	fmt.Println(Status{Code: 418})
	// Output:
	// /etc/enumtext not found
	// unexpected status 418 (0x1a2)
}

func ExampleCompile_error() {
	_, err := enumtext.Compile(enumtext.Named(enumtext.Field{Name: "message"}), "hello {mesage}")
	fmt.Println(err)
	// Output: placeholder {mesage} at offset 6: unknown field: no field named "mesage"
}

func ExampleOpen() {
	dir, err := os.MkdirTemp("", "enumtext-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	catalog := `
enums:
  - name: Shutdown
    variants:
      - name: Signal
        fields: [{name: sig, type: string}]
        template: "received {sig}"
      - name: Exit
        fields: [{type: i32}]
        template: "exit status {0}"
`
	if err := os.WriteFile(filepath.Join(dir, "shutdown.yaml"), []byte(catalog), 0644); err != nil {
		panic(err)
	}

	c, err := enumtext.Open(dir)
	if err != nil {
		panic(err)
	}

	out, _ := c.Render("Shutdown", "Signal", []byte("sig: SIGTERM"))
	fmt.Println(out)
	out, _ = c.Render("Shutdown", "Exit", []byte("[3]"))
	fmt.Println(out)
	// Output:
	// received SIGTERM
	// exit status 3
}
