// Command nstdbench drives nstd's buffers and pointers against a chosen
// allocator backend and reports what the allocator saw.
package main

func main() {
	execute()
}
