// Package cloudglue provides the Go client SDK for the Cloudglue
// video-understanding API.
//
// Cloudglue turns video into structured, searchable data: upload files,
// transcribe and describe them, extract entities with a prompt or JSON
// schema, group videos into collections, and generate grounded responses
// over that content.
//
// # Quick Start
//
//	client, err := cloudglue.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	file, err := client.Files.Upload(ctx, "talk.mp4", &cloudglue.UploadOptions{
//		WaitUntilFinish: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	job, err := client.Extract.Run(ctx, file.URI, &cloudglue.ExtractParams{
//		Prompt: "List every product mentioned in this video",
//	}, nil)
//
// The API key is read from the CLOUDGLUE_API_KEY environment variable, or
// passed explicitly with WithAPIKey.
//
// # Errors
//
// Every operation returns *Error on failure. Transport failures carry the
// HTTP status code, response body, headers, and reason phrase. Use
// errors.Is with the package sentinels (ErrTimeout, ErrInvalidRequest,
// ErrNetwork, ErrDecode) to classify failures:
//
//	_, err := client.Extract.Run(ctx, uri, params, nil)
//	var apiErr *cloudglue.Error
//	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
//		// back off
//	}
//
// # Waiting for processing
//
// Uploads, collection adds, and describe/extract jobs are asynchronous on
// the server. Methods that create them either return the immediate state or,
// when asked to wait, poll the status endpoint until a terminal state is
// observed or the wait budget is exhausted.
//
// # Streaming
//
// Responses.CreateStream returns a ResponseStream that yields server-sent
// events one at a time:
//
//	stream, err := client.Responses.CreateStream(ctx, params)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stream.Close()
//	for {
//		ev, err := stream.Recv()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(ev.Event, ev.Data)
//	}
package cloudglue
