// Package qapi defines the public surface of the QubeLint API client:
// resource client interfaces, domain types, the paginated search builder,
// and the typed error taxonomy.
//
// Construct a concrete client with the qlclient package:
//
//	client, err := qlclient.NewWithToken(ctx, "https://quality.example.com", token)
//	if err != nil {
//		return err
//	}
//
//	for issue, err := range client.Issues().Search().
//		ComponentKeys("my-project").
//		Severities("BLOCKER", "CRITICAL").
//		All(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(issue.Key, issue.Message)
//	}
//
// Failures are classified into typed kinds that callers can test with
// errors.As or the Is* helpers:
//
//	if qapi.IsNotFound(err) {
//		// project does not exist
//	}
package qapi
