// Package jobboard implements a job-board backend: accounts, job postings,
// and applications persisted via Bun, plus the authentication core that
// gates every protected operation.
//
// Authentication flow:
//   - Credentials are verified by UserProvider against the users repository
//     (bcrypt hashes, never exposed past the hasher boundary).
//   - Auther issues HS256 JWTs through TokenService and resolves bearer
//     tokens back into identities. Signature verification always precedes
//     any claim inspection.
//   - RequireActive is the account-status gate applied after resolution;
//     protected handlers receive the acting Identity through request locals.
//
// Persistence:
//   - Users, Jobs, and Applications repositories embed the generic Bun
//     repository and normalize record defaults on create. Relations are
//     foreign-key fields with explicit lookups (Jobs.ByEmployer,
//     Applications.ByJob) rather than live object graphs.
package jobboard
