// Command memectl drives the meme generation backend from a terminal: it runs
// single generation sessions, lists recorded history and converts animated
// GIFs to a still PNG.
package main
