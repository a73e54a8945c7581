// Package sdl implements a minimal display driver using SDL2.
package sdl
