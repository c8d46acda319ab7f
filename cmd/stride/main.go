// Package main provides the Stride CLI.
package main

import (
	"fmt"
	"os"

	"github.com/stride-ml/stride/autodiff"
	"github.com/stride-ml/stride/backend/cpu"
	"github.com/stride-ml/stride/nn"
	"github.com/stride-ml/stride/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Stride %s\n", version)
			return
		case "demo":
			demo()
			return
		}
	}

	fmt.Println("Stride - N-dimensional sliding-window operators for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run a volumetric max pooling forward/backward pass")
}

// demo runs a small 3D max pooling forward and backward pass on the
// CPU backend and prints the shapes involved.
func demo() {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	input := tensor.Randn[float32](tensor.Shape{1, 2, 8, 8, 8}, backend)
	pool := nn.NewMaxPool3D([]int{2}, nn.PoolConfig{}, backend)

	output := pool.Forward(input)
	fmt.Printf("forward:  %v -> %v on %s\n", input.Shape(), output.Shape(), backend.Name())

	grads := autodiff.Backward(output, backend)
	grad := grads[input.Raw()]
	fmt.Printf("backward: %d gradient tensors, input grad %v\n", len(grads), grad.Shape())
}
