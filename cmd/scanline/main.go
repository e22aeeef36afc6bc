// Command scanline renders OBJ and glTF models with a CPU scanline
// rasterizer, to image files or live in the terminal.
package main

import "github.com/taigrr/scanline/internal/cli"

func main() {
	cli.Execute()
}
