/*
Package authsdk is the client SDK and wire vocabulary of the project-manager
API.

# Wire format

Success bodies use a small envelope:

	{"status":"SUCCESS","message":"Login successful","data":{...}}

Failures use APIError:

	{"status":"ERROR","code":"TOKEN_REVOKED","message":"access token has been revoked"}

The server writes both with the types in this package, so a decoded error can
be compared against the predefined values:

	if errors.Is(err, authsdk.ErrTokenExpired) {
		_, err = client.Refresh(ctx)
	}

# Sessions

Tokens never appear in response bodies. Login and Refresh set two HttpOnly
cookies, access_token (path /) and refresh_token (path /api/auth), and a
Client keeps them in its cookie jar:

	client := authsdk.NewClient("http://localhost:8080")

	if _, err := client.Login(ctx, "alice", "correct horse"); err != nil {
		return err
	}
	me, err := client.Me(ctx)

	// The access token expired: rotate both tokens.
	_, err = client.Refresh(ctx)

	// Revoke the access token and drop the refresh token.
	err = client.Logout(ctx)

One Client is one session. Use separate clients to act as several users.

# Projects

	project, err := client.CreateProject(ctx) // caller becomes ADMIN
	_, err = client.AddMember(ctx, project.ProjectID, authsdk.AddMemberRequest{
		Email: "bob@example.com",
		Role:  "USER",
	})
	role, err := client.ProjectRole(ctx, project.ProjectID)
*/
package authsdk
