// Package services holds the use cases behind the client's screens:
// onboarding and authentication, the member directory, profiles, the job
// board and the dashboard. Services validate input locally before any
// request goes out and leave session bookkeeping to the session manager.
package services
