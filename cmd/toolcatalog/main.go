// Command toolcatalog syncs and inspects a remote tool catalog.
package main

func main() {
	Execute()
}
