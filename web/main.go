package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-montecarlo-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	maxRenders := flag.Int64("max_renders", 2, "Renders allowed to run at once")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(*port, *maxRenders)

	glog.Infof("Monte Carlo Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
