// ==============================================================================================
// FILE: wasm/wasm_main.go
// BUILD: GOOS=js GOARCH=wasm go build -o main.wasm ./wasm
// ==============================================================================================
package main

import (
	"bytes"
	"fmt"
	"syscall/js"

	"github.com/amoghasbhardwaj/mal-go/core"
	"github.com/amoghasbhardwaj/mal-go/env"
	"github.com/amoghasbhardwaj/mal-go/eval"
	"github.com/amoghasbhardwaj/mal-go/reader"
	"github.com/amoghasbhardwaj/mal-go/types"
)

// outputBuffer captures prn/println output so it can be shipped back
// to the browser alongside the expression's printed result.
var outputBuffer bytes.Buffer

// replEnv is reused across calls so def!/atoms persist between evaluations,
// the same session semantics the REPL gives a terminal user.
var replEnv *env.Environment

func main() {
	c := make(chan struct{}, 0)

	replEnv = core.NewEnv(&outputBuffer)
	if err := core.Bootstrap(replEnv); err != nil {
		panic(err)
	}

	js.Global().Set("runMal", js.FuncOf(runCode))
	fmt.Println("MAL WASM engine loaded.")
	<-c
}

// runCode is the bridge between JS and Go: it reads, evaluates, and prints
// one chunk of MAL source against the persistent session environment.
func runCode(this js.Value, p []js.Value) interface{} {
	code := p[0].String()
	outputBuffer.Reset()

	expr, err := reader.Read(code)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	result, err := eval.Eval(expr, replEnv)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	return map[string]interface{}{
		"logs":   outputBuffer.String(),
		"result": types.PrStr(result, true),
	}
}
