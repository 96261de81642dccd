// file: internals/helpers/avatar/avatar.go
//
// Stockage local des avatars tuteurs: decode (jpeg/png/webp), resize carré,
// recompress webp, écriture sous ./uploads/avatars. Servi en statique par fiber.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// côté max après resize; au-delà c'est du gâchis pour une vignette
	maxDimension = 512

	webpQuality = 80

	maxUploadBytes = 5 * 1024 * 1024

	baseDir   = "./uploads/avatars"
	publicDir = "/uploads/avatars"
)

// SaveFromMultipart convertit l'upload en webp et renvoie l'URL publique.
func SaveFromMultipart(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxUploadBytes {
		return "", fmt.Errorf("image trop lourde (%d Ko, max %d Ko)", fh.Size/1024, maxUploadBytes/1024)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("ouverture du fichier: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("lecture du fichier: %w", err)
	}

	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", err
	}

	// Fit garde le ratio, Lanczos pour la qualité
	img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encodage webp: %w", err)
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("création du dossier avatars: %w", err)
	}

	name := uuid.New().String() + ".webp"
	if err := os.WriteFile(filepath.Join(baseDir, name), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("écriture de l'avatar: %w", err)
	}

	return publicDir + "/" + name, nil
}

// Remove supprime un avatar stocké localement. URL externe → no-op.
func Remove(publicURL string) error {
	if !strings.HasPrefix(publicURL, publicDir+"/") {
		return nil
	}
	name := filepath.Base(publicURL)
	if name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("fichier vide")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		// fallback sur l'extension
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("format non supporté: %s (jpg/png/webp)", ct)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("décodage image: %w", err)
	}
	return img, nil
}
