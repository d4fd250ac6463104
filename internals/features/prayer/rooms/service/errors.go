package service

import "errors"

// Sentinel error domain ruang doa; dipetakan ke kode HTTP di controller.
var (
	ErrRoomNotFound        = errors.New("ruang doa tidak ditemukan")
	ErrUnauthorized        = errors.New("identitas user tidak ada")
	ErrRoomNotActive       = errors.New("ruang doa sedang tidak aktif")
	ErrInvalidToken        = errors.New("recording token tidak valid")
	ErrMissingPayload      = errors.New("file audio tidak ada")
	ErrUpstreamUnavailable = errors.New("layanan upstream tidak tersedia")
)
