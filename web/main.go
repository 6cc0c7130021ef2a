package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Phong Raytracer Web Server")
	for _, route := range webServer.Routes() {
		log.Printf("  http://localhost:%d%-14s %s", *port, route.Pattern, route.Description)
	}
	log.Printf("Scene, width, height, depth and background are shared by /api/render and /api/inspect")

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
