// Package pictureutil holds single-image helpers used to re-rasterize
// pictures: quarter-turn rotation, rectangular clipping and base64 data URL
// conversion. Every helper returns a fresh image and never draws into its
// input.
package pictureutil
