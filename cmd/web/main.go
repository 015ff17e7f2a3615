package main

import "hechonl_backend/internal/app"

func main() {
	app.Run()
}
