// Package services holds domain logic that does not belong to a single
// aggregate:
//
//   - TrackingNumberGenerator draws unique shipment tracking numbers.
//   - DocumentBuilder turns a shipment and its timeline into a printable
//     Document (summary or delivery receipt). Rendering to PDF happens in an
//     outbound adapter; the Document only carries Latin-1 safe text.
package services
